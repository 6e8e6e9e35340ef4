package scanmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findCandidateScalar is the lane-at-a-time reference for the SWAR scan
// kernel. It reads the packed lanes through laneAt, so it exercises the
// plan layout as well as the kernel.
func findCandidateScalar(p *scanPlan, n int, query string) int {
	for i := 0; i < n; i++ {
		match := true
		for _, step := range p.steps {
			var qv uint16
			if p.fold {
				qv = foldValue(query, step.pos)
			} else {
				qv = effectiveValue(query, step.pos)
			}
			if laneAt(step, p.width, i) != qv {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func TestFindCandidateMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for _, width := range []int{16, 32, 64} {
		for round := 0; round < 5; round++ {
			n := 1 + rng.Intn(90)
			keys := randKeys(rng, n, 10)
			m := buildInts(t, keys, Config{LaneWidth: width})

			queries := append([]string{}, keys...)
			for i := 0; i < 300; i++ {
				b := make([]byte, rng.Intn(12))
				rng.Read(b)
				queries = append(queries, string(b))
			}
			for _, q := range queries {
				want := findCandidateScalar(m.plan, n, q)
				got := findCandidate(m.plan, q)
				require.Equal(t, want, got, "width %d query %q", width, q)
			}
		}
	}
}

// TestSingleSurvivor pins the perfect-reduction invariant at the mask
// level: for any query at most one lane survives all scans.
func TestSingleSurvivor(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	keys := randKeys(rng, 40, 8)
	m := buildInts(t, keys, Config{LaneWidth: 16})

	survivors := func(q string) int {
		count := 0
		for i := 0; i < len(keys); i++ {
			match := true
			for _, step := range m.plan.steps {
				if laneAt(step, m.plan.width, i) != effectiveValue(q, step.pos) {
					match = false
					break
				}
			}
			if match {
				count++
			}
		}
		return count
	}

	for _, k := range keys {
		assert.Equal(t, 1, survivors(k), "key %q", k)
	}
	for i := 0; i < 500; i++ {
		b := make([]byte, rng.Intn(10))
		rng.Read(b)
		assert.LessOrEqual(t, survivors(string(b)), 1, "query %q", b)
	}
}

func TestPlanValidityMask(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	keys := randKeys(rng, 20, 6)
	m := buildInts(t, keys, Config{LaneWidth: 16})

	require.Equal(t, 2, m.plan.nblocks)
	assert.Equal(t, ^uint64(0)>>(64-16), m.plan.valid[0])
	assert.Equal(t, uint64(1<<4-1), m.plan.valid[1])

	full := buildInts(t, randKeys(rng, 64, 6), Config{LaneWidth: 64})
	require.Equal(t, 1, full.plan.nblocks)
	assert.Equal(t, ^uint64(0), full.plan.valid[0])
}
