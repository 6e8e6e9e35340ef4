// Package scanmap implements an immutable "perfect scan" map for small
// keyed dictionaries that are built once and queried many times.
//
// Instead of hashing, Build picks a short list of byte positions that
// jointly distinguish every key and compiles them into per-position
// reference vectors. A lookup compares the query's byte at each chosen
// position against all keys at once, ANDs the match masks together and is
// left with at most one candidate, which a single full comparison
// confirms. The map is best suited to up to ~100 keys; past a few lane
// blocks a hash map wins.
package scanmap

import (
	"fmt"

	segAscii "github.com/segmentio/asm/ascii"
)

// maxKeys bounds the supported key count. The solver is quadratic-ish in
// the key count and the structure targets small dictionaries.
const maxKeys = 4096

// Map is an immutable associative container. Construct it with Build or
// BuildWithConfig; afterwards it is safe for unlimited concurrent
// readers, and lookups never allocate.
type Map[V any] struct {
	keys []string
	vals []V
	plan *scanPlan
}

// Build compiles keys and values into a Map with the default Config.
// Pairing is preserved: keys[i] maps to values[i]. Keys may hold
// arbitrary bytes and must be unique.
func Build[V any](keys []string, values []V) (*Map[V], error) {
	return BuildWithConfig(keys, values, Config{})
}

// BuildWithConfig compiles keys and values into a Map.
func BuildWithConfig[V any](keys []string, values []V, cfg Config) (*Map[V], error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values))
	}
	if len(keys) > maxKeys {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyKeys, len(keys), maxKeys)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Fold {
		for i, k := range keys {
			if !segAscii.ValidString(k) {
				return nil, fmt.Errorf("%w: fold requires ASCII keys, key %d (%q) is not", ErrInvalidConfig, i, k)
			}
		}
	}

	kt := newKeyTable(keys, cfg.Fold)
	if i, j, ok := findDuplicate(kt.keys); ok {
		return nil, fmt.Errorf("%w: %q at %d and %d", ErrDuplicateKey, keys[j], i, j)
	}

	positions, err := solveScans(kt, cfg)
	if err != nil {
		return nil, err
	}

	return &Map[V]{
		keys: append([]string(nil), keys...),
		vals: append([]V(nil), values...),
		plan: buildPlan(kt, positions, cfg.laneWidth(), cfg.Fold),
	}, nil
}

// findDuplicate returns the indices of the first pair of equal keys.
func findDuplicate(keys []string) (int, int, bool) {
	seen := make(map[string]int, len(keys))
	for j, k := range keys {
		if i, ok := seen[k]; ok {
			return i, j, true
		}
		seen[k] = j
	}
	return 0, 0, false
}

// Get returns the value stored under query.
func (m *Map[V]) Get(query string) (V, bool) {
	i := lookupIndex(m, query)
	if i < 0 {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// GetBytes is Get for a byte-slice query.
func (m *Map[V]) GetBytes(query []byte) (V, bool) {
	i := lookupIndex(m, query)
	if i < 0 {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// Index returns the position query was inserted at, or -1.
func (m *Map[V]) Index(query string) int {
	return lookupIndex(m, query)
}

// Len returns the number of keys.
func (m *Map[V]) Len() int { return len(m.keys) }

// Range calls f for every key/value pair in insertion order until f
// returns false.
func (m *Map[V]) Range(f func(key string, value V) bool) {
	for i, k := range m.keys {
		if !f(k, m.vals[i]) {
			return
		}
	}
}

// lookupIndex narrows query to the single candidate the plan allows,
// then verifies it. The verification is not optional: the scans test
// only a few positions, so a query that is not a stored key can still
// coincide with one at all of them.
func lookupIndex[V any, T string | []byte](m *Map[V], query T) int {
	i := findCandidate(m.plan, query)
	if i < 0 {
		return -1
	}
	key := m.keys[i]
	if m.plan.fold {
		if !equalFold(key, query) {
			return -1
		}
		return i
	}
	if string(query) != key {
		return -1
	}
	return i
}
