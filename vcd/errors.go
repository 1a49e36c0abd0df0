package vcd

import "errors"

var (
	// ErrPhase indicates an operation that is illegal in the writer's
	// current phase: registering after the header was emitted, mutating a
	// closed writer, or presenting a timestamp older than the current one.
	ErrPhase = errors.New("vcd: operation not allowed in current phase")

	// ErrValue indicates input data that cannot be encoded: an illegal
	// value for a variable's kind, an out-of-range integer, a wrong tuple
	// arity, an unknown scope or variable kind, or an empty name.
	ErrValue = errors.New("vcd: invalid value")

	// ErrTimescale indicates a timescale with an unsupported magnitude or
	// unit, or a string that cannot be tokenized.
	ErrTimescale = errors.New("vcd: invalid timescale")

	// ErrDuplicateVar indicates a second registration of the same
	// (scope, name) pair.
	ErrDuplicateVar = errors.New("vcd: variable already registered")
)
