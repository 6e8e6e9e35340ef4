//go:build !amd64

package scanmap

// defaultLaneWidth returns the 128-bit-vector block size; NEON and the
// scalar kernels both do best at 16 lanes.
func defaultLaneWidth() int { return 16 }
