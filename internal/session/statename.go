package session

// The engine names its state variables one way and its initialization
// parameters another. A continued run starts from the previous run's final
// state, so every captured state name must be translated into the location
// that seeds it. The patterns below come from the model export convention:
//
//	scalar      x            -> x_start
//	array       x[12]        -> x_start[12]   (index up to 3 digits)
//	integrator  ...controlI.y -> <head>I_start (fixed 10-char tail stripped)
//	discrete    ...controlD.x -> <head>D_start (fixed 10-char tail stripped)
//
// Classification happens once per name; translation is a pure function of
// the classified form.

// StateKind tags the naming pattern of one engine state variable.
type StateKind int

const (
	KindScalar StateKind = iota
	KindArrayIndexed
	KindIntegratorFiltered
	KindDiscreteFiltered
)

const (
	integratorTail = "I.y"
	discreteTail   = "D.x"
	// filteredTailLen is the exporter's fixed-length filter-block suffix.
	filteredTailLen = 10
	// maxIndexWidth bounds the digits of a supported array index.
	maxIndexWidth = 3
)

// stateName is one engine state variable with its classification resolved.
type stateName struct {
	raw  string
	kind StateKind
	// width is the digit count of the array index for KindArrayIndexed.
	width int
}

// classifyState resolves the naming pattern of one state variable. An array
// index wider than maxIndexWidth digits is unsupported and fatal to the
// continuation mapping.
func classifyState(raw string) (stateName, error) {
	n := len(raw)
	if n > 0 && raw[n-1] == ']' {
		for w := 1; w <= maxIndexWidth; w++ {
			open := n - w - 2
			if open >= 0 && raw[open] == '[' {
				return stateName{raw: raw, kind: KindArrayIndexed, width: w}, nil
			}
		}
		return stateName{}, &TranslationError{Name: raw, Wrapped: ErrStateWidth}
	}
	if n >= filteredTailLen {
		switch raw[n-3:] {
		case integratorTail:
			return stateName{raw: raw, kind: KindIntegratorFiltered}, nil
		case discreteTail:
			return stateName{raw: raw, kind: KindDiscreteFiltered}, nil
		}
	}
	return stateName{raw: raw, kind: KindScalar}, nil
}

// initLocation derives the initialization-parameter location that seeds
// this state at run start.
func (s stateName) initLocation() string {
	switch s.kind {
	case KindArrayIndexed:
		open := len(s.raw) - s.width - 2
		return s.raw[:open] + InitSuffix + s.raw[open:]
	case KindIntegratorFiltered:
		return s.raw[:len(s.raw)-filteredTailLen] + "I" + InitSuffix
	case KindDiscreteFiltered:
		return s.raw[:len(s.raw)-filteredTailLen] + "D" + InitSuffix
	default:
		return s.raw + InitSuffix
	}
}
