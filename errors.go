package viterbi

import "errors"

// Error taxonomy for the decoder's public entry point.
//
// INVALID descriptors and PROTOCOL failures are distinct sentinels so a
// caller can tell a bad Code apart from a trellis that could not be built.
// NOMEM is reserved for path-memory sizing that a real allocator could
// not satisfy; Go has no malloc failure to observe, so this fires only
// when the state count (from K) times the column count (from Len and the
// termination mode) exceeds the 2^31-entry path-memory limit.
var (
	// ErrInvalidCode is returned when a Code violates the K/N/Len
	// constraints in §6, or no branch-metric kernel exists for the
	// requested (K, N) pair.
	ErrInvalidCode = errors.New("viterbi: invalid code descriptor")

	// ErrNoMemory is returned when the decoder's path memory would
	// exceed 2^31 entries for the requested code length.
	ErrNoMemory = errors.New("viterbi: path memory allocation too large")

	// ErrProtocol is returned when a recursive code lacks a systematic
	// bit position, or traceback cannot find any non-negative accumulated
	// path metric.
	ErrProtocol = errors.New("viterbi: protocol error")
)
