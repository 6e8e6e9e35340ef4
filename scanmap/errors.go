package scanmap

import "errors"

// Build errors. Callers match them with errors.Is; Build attaches
// context by wrapping.
var (
	// ErrDuplicateKey indicates two keys compare equal (after folding,
	// when folding is enabled).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrLengthMismatch indicates keys and values differ in length.
	ErrLengthMismatch = errors.New("keys and values differ in length")

	// ErrTooManyKeys indicates the key count exceeds the supported bound.
	ErrTooManyKeys = errors.New("too many keys")

	// ErrUnsolvable indicates no scan plan distinguishes every key within
	// the configured budget.
	ErrUnsolvable = errors.New("no scan plan distinguishes every key")

	// ErrTooWide indicates the keys only differ at or beyond MaxScanBytes.
	ErrTooWide = errors.New("distinguishing positions exceed MaxScanBytes")

	// ErrInvalidConfig indicates build configuration the map cannot honor.
	ErrInvalidConfig = errors.New("invalid config")
)
