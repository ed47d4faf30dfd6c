package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrContinuationWithoutRun indicates a continued run requested before
	// any initial run has completed.
	ErrContinuationWithoutRun = errors.New("session: simulation must first be run in initial mode")

	// ErrStateWidth indicates a state name whose array index is wider than
	// the supported three digits; the continuation mapping cannot proceed.
	ErrStateWidth = errors.New("session: state vector exceeds supported size")

	// ErrBadMode indicates an unrecognized run mode.
	ErrBadMode = errors.New("session: simulation mode not recognized")
)

// MissingValueError reports declared parameters that hold no value at the
// time a run is requested. The run aborts before the engine is touched.
type MissingValueError struct {
	Names []string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("session: value missing for: %s", strings.Join(e.Names, ", "))
}

// TranslationError wraps a state-name classification failure with the name
// that triggered it.
type TranslationError struct {
	Name    string
	Wrapped error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("session: cannot translate state %q: %v", e.Name, e.Wrapped)
}

func (e *TranslationError) Unwrap() error {
	return e.Wrapped
}
