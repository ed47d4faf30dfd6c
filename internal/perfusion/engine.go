package perfusion

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bioproclab/fmex/internal/engine"
	"github.com/bioproclab/fmex/internal/solver"
)

// maxStep bounds the integrator step between communication points.
const maxStep = 0.05

// Engine runs the perfusion model behind the external-engine surface.
// Not safe for concurrent use; the session layer is the single caller.
type Engine struct {
	loaded      bool
	m           model
	t           float64
	x           solver.State
	x0          solver.State
	rk          *solver.RK4
	generatedAt string
}

func New() *Engine {
	return &Engine{rk: solver.NewRK4()}
}

func (e *Engine) Load() error {
	if e.loaded {
		return nil
	}
	e.loaded = true
	e.generatedAt = time.Now().Format(time.RFC3339)
	return e.Reset()
}

func (e *Engine) Reset() error {
	if !e.loaded {
		return engine.ErrNotLoaded
	}
	e.m = defaultModel()
	e.x0 = e.m.defaultInitial()
	e.x = e.x0.Clone()
	e.t = 0
	return nil
}

func (e *Engine) Set(location string, value float64) error {
	if !e.loaded {
		return engine.ErrNotLoaded
	}
	if ix, ok := initLocations[location]; ok {
		e.x0[ix] = value
		return nil
	}
	switch location {
	case "bioreactor.Vcc":
		e.m.rea.Vcc = value
	case "bioreactor.scale":
		e.m.rea.Scale = value
	case "bioreactor.CL0":
		e.m.rea.CL0 = value
	case "airsupply.OTR":
		e.m.rea.OTR = value
	case "bioreactor.culture.qm":
		e.m.cul.Qm = value
	case "bioreactor.culture.Yns":
		e.m.cul.Yns = value
	case "bioreactor.culture.qLpmax":
		e.m.cul.QLpMax = value
	default:
		return fmt.Errorf("%w: %s", engine.ErrUnknownLocation, location)
	}
	return nil
}

func (e *Engine) Get(location string) (float64, error) {
	if !e.loaded {
		return 0, engine.ErrNotLoaded
	}
	if ix, ok := stateLocations[location]; ok {
		return e.x[ix], nil
	}
	if ix, ok := initLocations[location]; ok {
		return e.x0[ix], nil
	}
	if v, ok := liquidphase[location]; ok {
		return v, nil
	}
	switch location {
	case "bioreactor.Vcc":
		return e.m.rea.Vcc, nil
	case "bioreactor.scale":
		return e.m.rea.Scale, nil
	case "bioreactor.CL0":
		return e.m.rea.CL0, nil
	case "airsupply.OTR":
		return e.m.rea.OTR, nil
	case "bioreactor.culture.qm":
		return e.m.cul.Qm, nil
	case "bioreactor.culture.Yns":
		return e.m.cul.Yns, nil
	case "bioreactor.culture.qLpmax":
		return e.m.cul.QLpMax, nil
	case "pump.F":
		return e.m.feed(e.t), nil
	case "der(bioreactor.c[1])":
		return e.m.Derive(e.x, e.t)[ixN], nil
	case "der(bioreactor.DO)":
		return e.m.Derive(e.x, e.t)[ixDO], nil
	case "temp_1", "_eventCounter":
		return 0, nil
	case "airsupply.F_air":
		return 60 * e.m.rea.Vcc, nil
	}
	return 0, fmt.Errorf("%w: %s", engine.ErrUnknownLocation, location)
}

// Simulate integrates the model over [start, final] and samples opts.NCP
// intervals. The run always seeds from the initialization parameters, so a
// continued run reproduces the previous final state exactly when every
// *_start location was written beforehand.
func (e *Engine) Simulate(start, final float64, opts engine.Options) (*engine.Result, error) {
	if !e.loaded {
		return nil, engine.ErrNotLoaded
	}
	if final <= start {
		return nil, &engine.InvokeError{
			Start: start, Final: final,
			Wrapped: errors.New("final time must lie after start time"),
		}
	}
	ncp := opts.NCP
	if ncp <= 0 {
		ncp = engine.DefaultOptions().NCP
	}

	x := e.x0.Clone()
	t := start
	res := engine.NewResult(ncp + 1)
	e.sample(res, x, t)

	h := (final - start) / float64(ncp)
	sub := int(math.Ceil(h / maxStep))
	if sub < 1 {
		sub = 1
	}
	dt := h / float64(sub)

	for i := 0; i < ncp; i++ {
		for j := 0; j < sub; j++ {
			x = e.rk.Step(e.m, x, t, dt)
			t += dt
		}
		// Land sample times on the exact grid, free of step roundoff.
		t = start + float64(i+1)*h
		for _, v := range x {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &engine.InvokeError{
					Start: start, Final: final,
					Wrapped: fmt.Errorf("solver diverged at t=%.3f", t),
				}
			}
		}
		e.sample(res, x, t)
	}

	e.x = x
	e.t = final
	return res, nil
}

func (e *Engine) sample(res *engine.Result, x solver.State, t float64) {
	r := e.m.rates(x)
	res.Time = append(res.Time, t)
	push := func(name string, v float64) {
		res.Series[name] = append(res.Series[name], v)
	}
	push("N", x[ixN])
	push("G", x[ixG])
	push("L", x[ixL])
	push("DO", x[ixDO])
	push("Vcc", e.m.rea.Vcc)
	push("F", e.m.feed(t))
	push("qN", r.qN)
	push("qNmax", r.qNmax)
	push("qG", r.qG)
	push("qLp", r.qLp)
	push("qLc", r.qLc)
	push("qO2", r.qO2)
}

func (e *Engine) StateNames() []string {
	out := make([]string, len(stateNames))
	copy(out, stateNames)
	return out
}

func (e *Engine) ModelVariables() map[string]engine.Variable {
	out := make(map[string]engine.Variable, len(variables))
	for name, v := range variables {
		out[name] = v
	}
	return out
}

func (e *Engine) VariableDescription(name string) (string, error) {
	v, ok := variables[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", engine.ErrUnknownLocation, name)
	}
	return v.Description, nil
}

func (e *Engine) VariableUnit(name string) (string, error) {
	v, ok := variables[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", engine.ErrUnknownLocation, name)
	}
	if v.Unit == "" {
		return "", engine.ErrNoUnit
	}
	return v.Unit, nil
}

func (e *Engine) Provenance() engine.Provenance {
	return engine.Provenance{
		GenerationTool: "fmex model exporter",
		FormatVersion:  "2.0",
		ModelName:      "BPL.STEM_AIR.Perfusion",
		GeneratedAt:    e.generatedAt,
	}
}
