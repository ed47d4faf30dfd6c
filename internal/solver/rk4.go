// Package solver provides the fixed-step integrator used by the built-in
// reference engine.
package solver

// State is one point in a model's continuous state space.
type State []float64

// Clone returns an independent copy of s.
func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// System is an autonomous ODE right-hand side.
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// RK4 is a classical fourth-order Runge-Kutta stepper. Scratch buffers are
// reused across steps, so a single RK4 value must not be shared between
// systems of different dimension mid-run.
type RK4 struct {
	k1, k2, k3, k4 State
	scratch        State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(State, n)
		r.k2 = make(State, n)
		r.k3 = make(State, n)
		r.k4 = make(State, n)
		r.scratch = make(State, n)
	}
}

// Step advances x by one step of size dt and returns the new state.
func (r *RK4) Step(sys System, x State, t, dt float64) State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, t+dt))

	result := make(State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
