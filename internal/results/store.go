// Package results persists completed runs under a data directory: one CSV
// of the sampled series and one JSON metadata file per run. The session
// core itself stays in-memory; this is an export convenience.
package results

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/bioproclab/fmex/internal/engine"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Mode       string             `json:"mode"`
	StartTime  float64            `json:"start_time"`
	FinalTime  float64            `json:"final_time"`
	NCP        int                `json:"ncp"`
	Parameters map[string]float64 `json:"parameters"`
	Model      string             `json:"model"`
	Tool       string             `json:"tool"`
}

// Save writes one run. The series CSV has a time column followed by every
// series in lexical order so files diff cleanly across runs.
func (s *Store) Save(mode string, params map[string]float64, prov engine.Provenance, opts engine.Options, res *engine.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Mode:       mode,
		StartTime:  res.Time[0],
		FinalTime:  res.FinalTime(),
		NCP:        opts.NCP,
		Parameters: params,
		Model:      prov.ModelName,
		Tool:       prov.GenerationTool,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	w := csv.NewWriter(csvFile)
	defer w.Flush()

	names := make([]string, 0, len(res.Series))
	for name := range res.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	header := append([]string{"time"}, names...)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for i := range res.Time {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(res.Time[i], 'f', 6, 64))
		for _, name := range names {
			row = append(row, strconv.FormatFloat(res.Series[name][i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// Load reads back one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// List enumerates saved runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}
	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}
