package results

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/bioproclab/fmex/internal/engine"
)

func sampleRun() *engine.Result {
	return &engine.Result{
		Time: []float64{0, 50, 100},
		Series: map[string][]float64{
			"N":  {50, 55, 61},
			"DO": {100, 98, 97},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	prov := engine.Provenance{ModelName: "BPL.STEM_AIR.Perfusion", GenerationTool: "fmex model exporter"}
	params := map[string]float64{"Vcc": 0.040}

	runID, err := st.Save("initial", params, prov, engine.DefaultOptions(), sampleRun())
	if err != nil {
		t.Fatal(err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Mode != "initial" || meta.FinalTime != 100 {
		t.Errorf("meta = %+v", meta)
	}
	if meta.Parameters["Vcc"] != 0.040 {
		t.Errorf("parameters = %v", meta.Parameters)
	}
	if meta.Model != "BPL.STEM_AIR.Perfusion" {
		t.Errorf("model = %q", meta.Model)
	}
}

func TestSeriesCSVLayout(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("initial", nil, engine.Provenance{}, engine.DefaultOptions(), sampleRun())
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, runID, "series.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header plus 3 samples", len(rows))
	}
	header := rows[0]
	if header[0] != "time" || header[1] != "DO" || header[2] != "N" {
		t.Errorf("header = %v, want [time DO N]", header)
	}
}

func TestListEmpty(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("runs = %v, want none", runs)
	}
}
