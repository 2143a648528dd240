package x86

import "errors"

// Decode failure taxonomy. None are recoverable within one instruction;
// the caller decides whether to stop the sweep or resync.
var (
	// ErrTruncated means the encoding needs more bytes than the input holds.
	ErrTruncated = errors.New("truncated instruction")
	// ErrUnknownOpcode means no descriptor covers the opcode, or a
	// digit-group opcode carried the wrong reg extension.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrTooLong means the encoding would exceed the architectural
	// 15-byte limit.
	ErrTooLong = errors.New("instruction exceeds 15 bytes")
)
