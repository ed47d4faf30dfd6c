package engine

import "errors"

var (
	// ErrNotLoaded indicates an operation that requires a loaded engine.
	ErrNotLoaded = errors.New("engine: model not loaded")

	// ErrUnknownLocation indicates a set/get against a location the model
	// does not declare.
	ErrUnknownLocation = errors.New("engine: unknown location")

	// ErrNoUnit indicates a unit query against a variable with no declared
	// unit. Callers treat this as non-fatal and substitute an empty unit.
	ErrNoUnit = errors.New("engine: variable has no declared unit")
)

// InvokeError wraps a failure raised by the engine during Simulate.
type InvokeError struct {
	Start, Final float64
	Wrapped      error
}

func (e *InvokeError) Error() string {
	return "engine: simulate failed: " + e.Wrapped.Error()
}

func (e *InvokeError) Unwrap() error {
	return e.Wrapped
}
