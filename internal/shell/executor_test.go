package shell

import (
	"errors"
	"strings"
	"testing"

	"github.com/bioproclab/fmex/internal/describe"
	"github.com/bioproclab/fmex/internal/diagram"
	"github.com/bioproclab/fmex/internal/engine"
	"github.com/bioproclab/fmex/internal/perfusion"
	"github.com/bioproclab/fmex/internal/results"
	"github.com/bioproclab/fmex/internal/session"
)

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	eng := perfusion.New()
	store := perfusion.Parameters()
	registry := diagram.NewRegistry()
	sess := session.New(eng, store, registry)
	return &Executor{
		Sess: sess,
		Desc: &describe.Describer{
			Eng:            eng,
			Store:          store,
			CultureInfo:    perfusion.CultureInfo,
			SeedComponents: perfusion.MinimumComponents,
			MSLInfo:        "3.2.3",
		},
		Registry: registry,
		Results:  results.New(t.TempDir()),
		Layouts: map[string]LayoutFunc{
			"basic":         perfusion.BasicLayout,
			"comprehensive": perfusion.ComprehensiveLayout,
		},
		Opts:     engine.Options{NCP: 50, Silent: true},
		Duration: 10,
	}
}

func exec(t *testing.T, e *Executor, line string) string {
	t.Helper()
	var buf strings.Builder
	if err := e.Exec(&buf, line); err != nil {
		t.Fatalf("%q: %v", line, err)
	}
	return buf.String()
}

func TestParUpdatesStore(t *testing.T) {
	e := newTestExecutor(t)

	out := exec(t, e, "par Vcc=0.05")
	if out != "" {
		t.Errorf("unexpected output: %q", out)
	}
	if v, _ := e.Sess.Store().Value("Vcc"); v != 0.05 {
		t.Errorf("Vcc = %v, want 0.05", v)
	}

	out = exec(t, e, "par bogus=1")
	if !strings.Contains(out, "bogus") || !strings.Contains(out, "not an accessible parameter") {
		t.Errorf("output = %q", out)
	}
}

func TestInitRejectsPlainParameter(t *testing.T) {
	e := newTestExecutor(t)
	out := exec(t, e, "init Vcc=0.05")
	if !strings.Contains(out, "not an initial value") {
		t.Errorf("output = %q", out)
	}
}

func TestSimuAndContinuation(t *testing.T) {
	e := newTestExecutor(t)

	out := exec(t, e, "simu 100")
	if !strings.Contains(out, "[0, 100]") {
		t.Errorf("output = %q", out)
	}

	out = exec(t, e, "simu 50 cont")
	if !strings.Contains(out, "[100, 150]") {
		t.Errorf("output = %q", out)
	}
}

func TestSimuContWithoutRunFails(t *testing.T) {
	e := newTestExecutor(t)
	var buf strings.Builder
	err := e.Exec(&buf, "simu 50 cont")
	if !errors.Is(err, session.ErrContinuationWithoutRun) {
		t.Errorf("err = %v, want ErrContinuationWithoutRun", err)
	}
}

func TestNewplotAndShow(t *testing.T) {
	e := newTestExecutor(t)

	out := exec(t, e, "newplot basic")
	if !strings.Contains(out, "6 panels") {
		t.Errorf("output = %q", out)
	}
	if got := len(e.Registry.Actions()); got != 6 {
		t.Errorf("registered actions = %d, want 6", got)
	}

	out = exec(t, e, "show")
	if !strings.Contains(out, "no simulation done") {
		t.Errorf("output = %q", out)
	}

	exec(t, e, "simu 10")
	var buf strings.Builder
	if err := e.Exec(&buf, "show"); err != nil {
		t.Errorf("show after run: %v", err)
	}
}

func TestDescribeAndInfo(t *testing.T) {
	e := newTestExecutor(t)
	exec(t, e, "simu 10")

	if out := exec(t, e, "describe culture"); !strings.Contains(out, "stem cells") {
		t.Errorf("describe culture = %q", out)
	}
	if out := exec(t, e, "info"); !strings.Contains(out, "BPL.STEM_AIR.Perfusion") {
		t.Errorf("info = %q", out)
	}
	if out := exec(t, e, "disp Vcc"); !strings.Contains(out, "Vcc") {
		t.Errorf("disp = %q", out)
	}
}

func TestExport(t *testing.T) {
	e := newTestExecutor(t)

	if out := exec(t, e, "export"); !strings.Contains(out, "no simulation done") {
		t.Errorf("export without run = %q", out)
	}

	exec(t, e, "simu 10")
	out := exec(t, e, "export")
	if !strings.Contains(out, "saved run_") {
		t.Errorf("export = %q", out)
	}

	runs, err := e.Results.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Mode != "initial" {
		t.Errorf("runs = %+v", runs)
	}
}
