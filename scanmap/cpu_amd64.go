//go:build amd64

package scanmap

import "golang.org/x/sys/cpu"

// defaultLaneWidth picks the widest block a single vector compare could
// cover on this CPU. The choice only affects performance, never results.
func defaultLaneWidth() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 64
	case cpu.X86.HasAVX2:
		return 32
	default:
		return 16
	}
}
