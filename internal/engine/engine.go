// Package engine defines the narrow surface of the external co-simulation
// engine that the session layer drives. The engine itself (state integration,
// event handling, model binary execution) lives behind this interface.
package engine

// Options controls a single Simulate invocation.
type Options struct {
	// NCP is the number of communication points in the stored result.
	NCP int
	// Silent suppresses solver chatter on the engine side.
	Silent bool
}

// DefaultOptions mirrors the standard profile used for interactive work.
func DefaultOptions() Options {
	return Options{NCP: 500, Silent: true}
}

// Variable is the metadata record the engine keeps per model variable.
type Variable struct {
	Description string
	Unit        string
	Causality   Causality
}

// Causality tells what role a variable plays in the model.
type Causality int

const (
	CausalityParameter Causality = iota
	CausalityState
	CausalityOutput
	CausalityLocal
)

// Provenance identifies the tool chain that produced the loaded model.
type Provenance struct {
	GenerationTool string
	FormatVersion  string
	ModelName      string
	GeneratedAt    string
}

// Engine is the external simulator collaborator. Implementations are not
// required to be safe for concurrent use; the session layer is the single
// caller.
type Engine interface {
	// Load prepares the engine handle. Called lazily before the first run.
	Load() error
	// Reset returns the engine to its freshly loaded default state.
	Reset() error

	// Set writes a value to an engine-internal location.
	Set(location string, value float64) error
	// Get reads the current value at an engine-internal location.
	Get(location string) (float64, error)

	// Simulate runs the model over [start, final] and returns the sampled
	// trajectory. A zero start means a fresh run from the default time.
	Simulate(start, final float64, opts Options) (*Result, error)

	// StateNames lists the engine-internal names of the continuous and
	// discrete state variables, in engine order.
	StateNames() []string
	// ModelVariables enumerates every model variable with its metadata.
	ModelVariables() map[string]Variable

	// VariableDescription returns the declared description for a variable.
	VariableDescription(name string) (string, error)
	// VariableUnit returns the declared unit, or ErrNoUnit when the
	// variable carries none.
	VariableUnit(name string) (string, error)

	// Provenance reports generation metadata for the loaded model.
	Provenance() Provenance
}
