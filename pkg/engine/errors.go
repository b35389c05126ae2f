package engine

import "github.com/pkg/errors"

// ErrColumnNotFound is wrapped into richer errors when a referenced column
// cannot be resolved against the current header(s).
var ErrColumnNotFound = errors.New("column not found")

// ErrArityMismatch is wrapped when an INSERT's column list and value list
// disagree in length (spec §7: "Arity mismatch... fatal to the statement").
var ErrArityMismatch = errors.New("arity mismatch")

// ErrDivisionByZero surfaces a recovered value.DivByZeroError as a runtime
// failure scoped to the statement that triggered it (spec §7: "fatal
// runtime failure (integer division traps)").
var ErrDivisionByZero = errors.New("division by zero")
