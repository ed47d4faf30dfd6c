package session

import (
	"errors"
	"math"
	"testing"

	"github.com/bioproclab/fmex/internal/engine"
)

// fakeEngine records every call the session makes. Each simulated run
// shifts every state value by one so captures are distinguishable.
type fakeEngine struct {
	loads  int
	resets int

	stateNames []string
	values     map[string]float64

	sets     map[string]float64
	setOrder []string

	simCalls [][2]float64
	simErr   error
}

func newFakeEngine(stateNames ...string) *fakeEngine {
	values := make(map[string]float64)
	for i, name := range stateNames {
		values[name] = float64(i + 1)
	}
	return &fakeEngine{
		stateNames: stateNames,
		values:     values,
		sets:       make(map[string]float64),
	}
}

func (f *fakeEngine) Load() error  { f.loads++; return nil }
func (f *fakeEngine) Reset() error { f.resets++; return nil }

func (f *fakeEngine) Set(location string, value float64) error {
	f.sets[location] = value
	f.setOrder = append(f.setOrder, location)
	return nil
}

func (f *fakeEngine) Get(location string) (float64, error) {
	v, ok := f.values[location]
	if !ok {
		return 0, engine.ErrUnknownLocation
	}
	return v, nil
}

func (f *fakeEngine) Simulate(start, final float64, opts engine.Options) (*engine.Result, error) {
	f.simCalls = append(f.simCalls, [2]float64{start, final})
	if f.simErr != nil {
		return nil, f.simErr
	}
	for name := range f.values {
		f.values[name]++
	}
	res := engine.NewResult(2)
	res.Time = []float64{start, final}
	res.Series["t"] = []float64{start, final}
	return res, nil
}

func (f *fakeEngine) StateNames() []string { return f.stateNames }

func (f *fakeEngine) ModelVariables() map[string]engine.Variable { return nil }

func (f *fakeEngine) VariableDescription(string) (string, error) { return "", nil }

func (f *fakeEngine) VariableUnit(string) (string, error) { return "", engine.ErrNoUnit }

func (f *fakeEngine) Provenance() engine.Provenance { return engine.Provenance{} }

func newTestSession(eng engine.Engine) *Session {
	store := NewParameterStore()
	store.Declare("Vcc", "bioreactor.Vcc", 0.040)
	store.Declare("N_start", "bioreactor.c_start[1]", 50)
	return New(eng, store, nil)
}

func TestRunInitial(t *testing.T) {
	eng := newFakeEngine("bioreactor.c[1]", "bioreactor.DO")
	s := newTestSession(eng)

	res, err := s.Run(100, ModeInitial, engine.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if eng.loads != 1 || eng.resets != 1 {
		t.Errorf("loads=%d resets=%d, want 1 and 1", eng.loads, eng.resets)
	}
	if len(eng.simCalls) != 1 || eng.simCalls[0] != [2]float64{0, 100} {
		t.Fatalf("simCalls = %v, want [[0 100]]", eng.simCalls)
	}
	if s.PrevFinalTime() != 100 {
		t.Errorf("PrevFinalTime = %v, want 100", s.PrevFinalTime())
	}
	if res.FinalTime() != 100 {
		t.Errorf("FinalTime = %v, want 100", res.FinalTime())
	}
	// Both parameter entries reached the engine.
	if eng.sets["bioreactor.Vcc"] != 0.040 || eng.sets["bioreactor.c_start[1]"] != 50 {
		t.Errorf("pushed parameters = %v", eng.sets)
	}
	// Every state name got captured.
	for _, name := range eng.stateNames {
		if _, ok := s.Continuation().Value(name); !ok {
			t.Errorf("state %q not captured", name)
		}
	}
}

func TestRunContinuedUsesCapturedState(t *testing.T) {
	eng := newFakeEngine("bioreactor.c[1]", "bioreactor.DO", "pump.controlI.y")
	s := newTestSession(eng)

	if _, err := s.Run(100, ModeInitial, engine.DefaultOptions()); err != nil {
		t.Fatal(err)
	}

	captured := map[string]float64{}
	for _, name := range eng.stateNames {
		v, _ := s.Continuation().Value(name)
		captured[name] = v
	}

	if _, err := s.Run(50, ModeContinued, engine.DefaultOptions()); err != nil {
		t.Fatal(err)
	}

	if len(eng.simCalls) != 2 || eng.simCalls[1] != [2]float64{100, 150} {
		t.Fatalf("simCalls = %v, want second call [100 150]", eng.simCalls)
	}
	if s.PrevFinalTime() != 150 {
		t.Errorf("PrevFinalTime = %v, want 150", s.PrevFinalTime())
	}

	// Every captured value was written to its translated init location.
	wantInits := map[string]string{
		"bioreactor.c[1]": "bioreactor.c_start[1]",
		"bioreactor.DO":   "bioreactor.DO_start",
		"pump.controlI.y": "pump.I_start",
	}
	for state, loc := range wantInits {
		got, ok := eng.sets[loc]
		if !ok {
			t.Errorf("init location %q never set", loc)
			continue
		}
		if got != captured[state] {
			t.Errorf("init %q = %v, want captured %v", loc, got, captured[state])
		}
	}
}

func TestRunContinuedWithoutPriorRun(t *testing.T) {
	eng := newFakeEngine("bioreactor.c[1]")
	s := newTestSession(eng)

	_, err := s.Run(50, ModeContinued, engine.DefaultOptions())
	if !errors.Is(err, ErrContinuationWithoutRun) {
		t.Fatalf("err = %v, want ErrContinuationWithoutRun", err)
	}
	if eng.loads != 0 || len(eng.simCalls) != 0 {
		t.Errorf("engine touched: loads=%d sims=%d", eng.loads, len(eng.simCalls))
	}
}

func TestRunMissingValueAbortsBeforeEngine(t *testing.T) {
	eng := newFakeEngine("bioreactor.c[1]")
	s := newTestSession(eng)
	s.Store().SetParameters(map[string]float64{"Vcc": math.NaN()})

	_, err := s.Run(100, ModeInitial, engine.DefaultOptions())

	var mverr *MissingValueError
	if !errors.As(err, &mverr) {
		t.Fatalf("err = %v, want MissingValueError", err)
	}
	if len(mverr.Names) != 1 || mverr.Names[0] != "Vcc" {
		t.Errorf("missing names = %v, want [Vcc]", mverr.Names)
	}
	if eng.loads != 0 || len(eng.simCalls) != 0 {
		t.Errorf("engine touched: loads=%d sims=%d", eng.loads, len(eng.simCalls))
	}
}

func TestRunEngineFailureLeavesSessionUntouched(t *testing.T) {
	eng := newFakeEngine("bioreactor.c[1]")
	s := newTestSession(eng)

	if _, err := s.Run(100, ModeInitial, engine.DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	before, _ := s.Continuation().Value("bioreactor.c[1]")

	eng.simErr = &engine.InvokeError{Start: 100, Final: 150, Wrapped: errors.New("solver blew up")}
	_, err := s.Run(50, ModeContinued, engine.DefaultOptions())
	if err == nil {
		t.Fatal("expected engine failure to propagate")
	}

	if s.PrevFinalTime() != 100 {
		t.Errorf("PrevFinalTime = %v, want unchanged 100", s.PrevFinalTime())
	}
	after, _ := s.Continuation().Value("bioreactor.c[1]")
	if after != before {
		t.Errorf("captured state changed across failed run: %v -> %v", before, after)
	}
}

func TestRunTranslationFailureStopsRun(t *testing.T) {
	eng := newFakeEngine("x[1234]")
	s := newTestSession(eng)

	_, err := s.Run(100, ModeInitial, engine.DefaultOptions())
	if !errors.Is(err, ErrStateWidth) {
		t.Fatalf("err = %v, want ErrStateWidth", err)
	}
	if len(eng.simCalls) != 0 {
		t.Errorf("engine invoked despite untranslatable state vector")
	}
}

type failingRenderer struct{ err error }

func (r *failingRenderer) Render(*engine.Result) error { return r.err }

func TestRunRendererFailureDoesNotAdvance(t *testing.T) {
	eng := newFakeEngine("bioreactor.c[1]")
	s := newTestSession(eng)
	s.renderer = &failingRenderer{err: errors.New("no such series")}

	if _, err := s.Run(100, ModeInitial, engine.DefaultOptions()); err == nil {
		t.Fatal("expected renderer failure to propagate")
	}
	if s.PrevFinalTime() != 0 {
		t.Errorf("PrevFinalTime = %v, want 0 after failed replay", s.PrevFinalTime())
	}
}
