package solver

import (
	"math"
	"testing"
)

type oscillator struct{}

func (o *oscillator) Derive(x State, t float64) State {
	return State{x[1], -x[0]}
}

func (o *oscillator) Dim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	sys := &oscillator{}
	step := NewRK4()

	x := State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = step.Step(sys, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4ScratchReuse(t *testing.T) {
	sys := &oscillator{}
	step := NewRK4()

	a := step.Step(sys, State{1.0, 0.0}, 0, 0.01)
	b := step.Step(sys, State{1.0, 0.0}, 0, 0.01)

	if a[0] != b[0] || a[1] != b[1] {
		t.Errorf("identical steps diverged: %v vs %v", a, b)
	}
}
