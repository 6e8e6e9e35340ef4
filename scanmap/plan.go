package scanmap

import (
	"math/bits"

	"github.com/mhr3/scanmap/internal/swar"
)

// scanStep is one scan of the compiled plan: a byte position and the
// reference lanes of every key at that position, packed four 16-bit
// lanes per word, one block of width keys after another.
type scanStep struct {
	pos   int
	lanes []uint64
}

// scanPlan is the compiled lookup table. It is immutable once built;
// lookups read it without synchronization.
type scanPlan struct {
	steps   []scanStep
	valid   []uint64 // per block: bit i set iff lane i holds a real key
	width   int      // keys per block
	nblocks int
	fold    bool
}

func buildPlan(kt *keyTable, positions []int, width int, fold bool) *scanPlan {
	n := kt.len()
	nblocks := (n + width - 1) / width
	wpb := width / swar.LanesPerWord

	p := &scanPlan{
		steps:   make([]scanStep, len(positions)),
		valid:   make([]uint64, nblocks),
		width:   width,
		nblocks: nblocks,
		fold:    fold,
	}
	for b := 0; b < nblocks; b++ {
		lanes := n - b*width
		if lanes >= width {
			lanes = width
		}
		if lanes == 64 {
			p.valid[b] = ^uint64(0)
		} else {
			p.valid[b] = 1<<uint(lanes) - 1
		}
	}
	for s, pos := range positions {
		words := make([]uint64, nblocks*wpb)
		for i := 0; i < n; i++ {
			v := kt.effective(i, pos)
			b, l := i/width, i%width
			words[b*wpb+l/swar.LanesPerWord] |= uint64(v) << (l % swar.LanesPerWord * 16)
		}
		p.steps[s] = scanStep{pos: pos, lanes: words}
	}
	return p
}

// findCandidate runs the scans against query and returns the index of
// the sole surviving lane, or -1 when every lane has been ruled out.
// The per-block mask starts from the validity mask, so padded lanes
// never vote, and each scan can only clear bits. Construction guarantees
// at most one lane survives all scans for any query whatsoever: two
// surviving lanes would mean two keys agree at every scanned position,
// which the solver rules out.
func findCandidate[T string | []byte](p *scanPlan, query T) int {
	wpb := p.width / swar.LanesPerWord
	for b := 0; b < p.nblocks; b++ {
		mask := p.valid[b]
		for s := range p.steps {
			step := &p.steps[s]
			var qv uint16
			if p.fold {
				qv = foldValue(query, step.pos)
			} else {
				qv = effectiveValue(query, step.pos)
			}
			probe := swar.Broadcast16(qv)
			var eq uint64
			for w, word := range step.lanes[b*wpb : (b+1)*wpb] {
				eq |= swar.MatchLanes16(word, probe) << (w * swar.LanesPerWord)
			}
			mask &= eq
			if mask == 0 {
				break
			}
		}
		if mask != 0 {
			return b*p.width + bits.TrailingZeros64(mask)
		}
	}
	return -1
}
