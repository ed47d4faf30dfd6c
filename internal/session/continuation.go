package session

import "github.com/bioproclab/fmex/internal/engine"

// Continuation carries the final state of one run into the initialization
// of the next. The set of state names is fixed when the continuation is
// built; no keys are added afterwards.
type Continuation struct {
	names  []stateName
	values map[string]float64
}

// NewContinuation classifies every engine state name up front. A name whose
// pattern is unsupported makes continuation impossible and fails here,
// before any value moves.
func NewContinuation(stateNames []string) (*Continuation, error) {
	c := &Continuation{
		names:  make([]stateName, 0, len(stateNames)),
		values: make(map[string]float64, len(stateNames)),
	}
	for _, raw := range stateNames {
		sn, err := classifyState(raw)
		if err != nil {
			return nil, err
		}
		c.names = append(c.names, sn)
		c.values[raw] = 0
	}
	return c, nil
}

// InitLocation translates one engine state name into the location of the
// initialization parameter that seeds it.
func InitLocation(raw string) (string, error) {
	sn, err := classifyState(raw)
	if err != nil {
		return "", err
	}
	return sn.initLocation(), nil
}

// Capture reads the current value of every known state from the engine.
// Called after each successful run.
func (c *Continuation) Capture(eng engine.Engine) error {
	for _, sn := range c.names {
		v, err := eng.Get(sn.raw)
		if err != nil {
			return err
		}
		c.values[sn.raw] = v
	}
	return nil
}

// Apply writes every captured value to its initialization location. Called
// before a continued run is invoked.
func (c *Continuation) Apply(eng engine.Engine) error {
	for _, sn := range c.names {
		if err := eng.Set(sn.initLocation(), c.values[sn.raw]); err != nil {
			return err
		}
	}
	return nil
}

// Value returns the last captured value for a state name.
func (c *Continuation) Value(raw string) (float64, bool) {
	v, ok := c.values[raw]
	return v, ok
}

// Names lists the state names in engine order.
func (c *Continuation) Names() []string {
	out := make([]string, len(c.names))
	for i, sn := range c.names {
		out[i] = sn.raw
	}
	return out
}
