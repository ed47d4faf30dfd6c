package session

import "github.com/bioproclab/fmex/internal/engine"

// Mode selects how a run relates to the previous one.
type Mode int

const (
	// ModeInitial starts from the model's default state at time zero.
	ModeInitial Mode = iota
	// ModeContinued resumes from the end time and final state of the
	// previous completed run.
	ModeContinued
)

func (m Mode) String() string {
	switch m {
	case ModeInitial:
		return "initial"
	case ModeContinued:
		return "continued"
	default:
		return "unknown"
	}
}

// Renderer replays registered diagram actions against fresh results.
type Renderer interface {
	Render(res *engine.Result) error
}

// Session owns one interactive simulation session: the engine handle, the
// parameter store, the continuation bookkeeping and the end time of the
// previous run. It is single-caller state; concurrent runs are not
// supported.
type Session struct {
	eng      engine.Engine
	store    *ParameterStore
	renderer Renderer

	cont          *Continuation
	loaded        bool
	prevFinalTime float64
	lastResult    *engine.Result
}

// New builds a session around an engine and a parameter store. renderer may
// be nil when no diagrams are registered.
func New(eng engine.Engine, store *ParameterStore, renderer Renderer) *Session {
	return &Session{eng: eng, store: store, renderer: renderer}
}

func (s *Session) Store() *ParameterStore     { return s.store }
func (s *Session) Engine() engine.Engine      { return s.eng }
func (s *Session) LastResult() *engine.Result { return s.lastResult }

// PrevFinalTime is the end time of the previous completed run, zero when no
// run has completed yet.
func (s *Session) PrevFinalTime() float64 { return s.prevFinalTime }

// HasRun reports whether a continued run is currently legal.
func (s *Session) HasRun() bool { return s.prevFinalTime > 0 }

// Continuation exposes the captured state values, nil before the first run
// attempt loads the engine.
func (s *Session) Continuation() *Continuation { return s.cont }

// Run drives one simulation over the requested duration. On success the
// diagrams replay, the final state is captured for continuation and the
// previous end time advances to the engine's reported final time. On any
// failure the session state is left exactly as it was.
func (s *Session) Run(duration float64, mode Mode, opts engine.Options) (*engine.Result, error) {
	if missing := s.store.Missing(); len(missing) > 0 {
		return nil, &MissingValueError{Names: missing}
	}
	if mode != ModeInitial && mode != ModeContinued {
		return nil, ErrBadMode
	}
	if mode == ModeContinued && !s.HasRun() {
		return nil, ErrContinuationWithoutRun
	}

	if !s.loaded {
		if err := s.eng.Load(); err != nil {
			return nil, err
		}
		s.loaded = true
	}
	if err := s.eng.Reset(); err != nil {
		return nil, err
	}
	if s.cont == nil {
		cont, err := NewContinuation(s.eng.StateNames())
		if err != nil {
			return nil, err
		}
		s.cont = cont
	}

	if err := s.pushParameters(); err != nil {
		return nil, err
	}

	var start float64
	if mode == ModeContinued {
		if err := s.cont.Apply(s.eng); err != nil {
			return nil, err
		}
		start = s.prevFinalTime
	}

	res, err := s.eng.Simulate(start, start+duration, opts)
	if err != nil {
		return nil, err
	}

	if s.renderer != nil {
		if err := s.renderer.Render(res); err != nil {
			return nil, err
		}
	}
	if err := s.cont.Capture(s.eng); err != nil {
		return nil, err
	}
	s.lastResult = res
	s.prevFinalTime = res.FinalTime()
	return res, nil
}

// pushParameters writes every store entry, parameters and initial values
// alike, to its engine location.
func (s *Session) pushParameters() error {
	return s.store.Each(func(name, location string, value float64) error {
		return s.eng.Set(location, value)
	})
}
