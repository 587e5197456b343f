package ruuid

import "errors"

var (
	// ErrInvalidFormat indicates that the UUID string is not in the canonical
	// 36-character hyphenated form
	ErrInvalidFormat = errors.New("ruuid: invalid UUID format")

	// ErrInvalidLength indicates that the UUID byte slice has incorrect length
	ErrInvalidLength = errors.New("ruuid: invalid UUID length (expected 16 bytes)")

	// ErrEntropyUnavailable indicates that the random source failed to supply entropy
	ErrEntropyUnavailable = errors.New("ruuid: entropy unavailable")

	// ErrNodeIDUnavailable indicates that no 48-bit node identifier could be
	// obtained for version 1 generation
	ErrNodeIDUnavailable = errors.New("ruuid: node identifier unavailable")
)
