package scanmap

import (
	"fmt"
	"math/bits"
)

// solveScans picks the ordered byte positions whose comparison elements
// jointly distinguish every key. It greedily refines a partition of key
// indices: each round scores every unused candidate position by how
// finely it splits the current blocks and keeps the best one, until all
// blocks are singletons. Candidates run up to one byte past the longest
// key so past-end sentinels can participate.
//
// Complexity is roughly scans * positions * keys, which is fine for the
// small dictionaries this structure targets.
func solveScans(kt *keyTable, cfg Config) ([]int, error) {
	n := kt.len()
	if n <= 1 {
		return nil, nil
	}

	maxPos := kt.maxLen
	if cfg.MaxScanBytes > 0 && maxPos > cfg.MaxScanBytes-1 {
		maxPos = cfg.MaxScanBytes - 1
	}

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	blocks := [][]int{all}

	var positions []int
	used := make([]bool, maxPos+1)
	for !singletons(blocks) {
		bestPos := -1
		bestScore := partitionScore(blocks)
		for p := 0; p <= maxPos; p++ {
			if used[p] {
				continue
			}
			if s := refinedScore(kt, blocks, p); s < bestScore {
				bestPos, bestScore = p, s
			}
		}
		if bestPos < 0 {
			// No candidate strictly refines the partition. With unique
			// keys this is only reachable through the position guard.
			if cfg.MaxScanBytes > 0 {
				return nil, fmt.Errorf("%w: keys only differ at or beyond byte %d", ErrTooWide, cfg.MaxScanBytes)
			}
			return nil, ErrUnsolvable
		}
		positions = append(positions, bestPos)
		used[bestPos] = true
		if cfg.MaxScans > 0 && len(positions) > cfg.MaxScans {
			return nil, fmt.Errorf("%w: more than %d scans required", ErrUnsolvable, cfg.MaxScans)
		}
		blocks = refine(kt, blocks, bestPos)
	}
	return positions, nil
}

func singletons(blocks [][]int) bool {
	for _, b := range blocks {
		if len(b) > 1 {
			return false
		}
	}
	return true
}

// blockCost is |B| * ceil-ish log2 of |B|. The sum over blocks strictly
// decreases whenever any block splits, so comparing sums is a consistent
// refinement score.
func blockCost(n int) int { return n * bits.Len(uint(n)) }

func partitionScore(blocks [][]int) int {
	s := 0
	for _, b := range blocks {
		s += blockCost(len(b))
	}
	return s
}

// refinedScore scores the partition obtained by additionally scanning p.
func refinedScore(kt *keyTable, blocks [][]int, p int) int {
	score := 0
	var sizes map[uint16]int
	for _, b := range blocks {
		if len(b) == 1 {
			score++
			continue
		}
		if sizes == nil {
			sizes = make(map[uint16]int, len(b))
		} else {
			clear(sizes)
		}
		for _, i := range b {
			sizes[kt.effective(i, p)]++
		}
		for _, n := range sizes {
			score += blockCost(n)
		}
	}
	return score
}

// refine splits every block of the partition by the comparison element at
// p, keeping key order within and across blocks deterministic.
func refine(kt *keyTable, blocks [][]int, p int) [][]int {
	var out [][]int
	for _, b := range blocks {
		if len(b) == 1 {
			out = append(out, b)
			continue
		}
		groups := make(map[uint16][]int, len(b))
		var order []uint16
		for _, i := range b {
			v := kt.effective(i, p)
			if _, ok := groups[v]; !ok {
				order = append(order, v)
			}
			groups[v] = append(groups[v], i)
		}
		for _, v := range order {
			out = append(out, groups[v])
		}
	}
	return out
}
