package vm

import "errors"

var (
	// ErrStackOverflow is returned when a call is executed with a full call stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is executed with an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrROMTooLarge is returned when a ROM does not fit into the program memory.
	ErrROMTooLarge = errors.New("rom too large")
)
