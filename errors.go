// Package qdd implements the core of a quantum decision diagram engine:
// a canonical, memory-shared representation of complex state vectors and
// operator matrices over n qubits, and the memoized recursive algebra over
// that representation (add, multiply, kronecker, transpose, inner product,
// partial trace).
//
// The package is not safe for concurrent use. A *Package owns every table
// (unique table, complex table, compute tables) that its algorithms touch,
// and none of them synchronize access.
package qdd

import "errors"

// Errors surfaced to callers at the public API boundary. Structural bugs
// inside the algorithms (unbalanced cache accounting, refcount underflow,
// double release of a scratch value) panic where they are detected, in
// the complex table, unique table and scratch cache, rather than being
// returned as errors -- they indicate the core itself is broken, not that
// the caller did something recoverable. CheckLocal/CheckGlobal report
// invariant violations as returned errors.
var (
	// ErrCapacityExceeded indicates a qubit count beyond the configured
	// or type-level maximum.
	ErrCapacityExceeded = errors.New("qdd: qubit capacity exceeded")

	// ErrInvalidLevel indicates a bad variable level or qubit count: a
	// Resize below the current count, a MakeBasisState state list whose
	// length differs from n, or a child not exactly one level below its
	// parent (CheckLocal).
	ErrInvalidLevel = errors.New("qdd: invalid variable level")

	// ErrInvalidNode indicates a node that fails a local invariant check:
	// CheckLocal returns it for a vector node whose weights are not
	// unit-normalized.
	ErrInvalidNode = errors.New("qdd: invalid node reference")

	// ErrInvalidControls indicates a control/target specification that
	// violates a gate-construction precondition (e.g. target in controls).
	ErrInvalidControls = errors.New("qdd: invalid control specification")

	// ErrVariableMismatch indicates two operands to a binary algorithm
	// were built against packages with a different qubit count.
	ErrVariableMismatch = errors.New("qdd: operand variable count mismatch")

	// ErrFormatMismatch indicates a version marker on a serialized stream
	// did not match what this package understands. The core does not
	// implement serialization itself and never returns this error; it
	// exists for an external codec to use.
	ErrFormatMismatch = errors.New("qdd: serialization format mismatch")

	// ErrCacheExhausted indicates the scratch complex cache ran out of
	// slots. This is a structural bug: some caller failed to release
	// scratch values it acquired.
	ErrCacheExhausted = errors.New("qdd: complex scratch cache exhausted")

	// ErrUnknownGate indicates a rotation axis or gate identifier this
	// package does not recognize.
	ErrUnknownGate = errors.New("qdd: unknown gate identifier")
)
