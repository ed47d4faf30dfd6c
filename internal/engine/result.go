package engine

import "fmt"

// Result is one sampled trajectory returned by Simulate.
type Result struct {
	Time   []float64
	Series map[string][]float64
}

// NewResult allocates a result sized for n communication points.
func NewResult(n int) *Result {
	return &Result{
		Time:   make([]float64, 0, n),
		Series: make(map[string][]float64),
	}
}

// FinalTime is the last sampled time, or 0 for an empty result.
func (r *Result) FinalTime() float64 {
	if len(r.Time) == 0 {
		return 0
	}
	return r.Time[len(r.Time)-1]
}

// Get returns the named series or an error when the run never sampled it.
func (r *Result) Get(name string) ([]float64, error) {
	s, ok := r.Series[name]
	if !ok {
		return nil, fmt.Errorf("result has no series %q", name)
	}
	return s, nil
}

// Len is the number of sampled points.
func (r *Result) Len() int {
	return len(r.Time)
}
