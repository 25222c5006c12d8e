// Package storage persists simulation runs: a metadata document plus the
// release/contained time series, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/repoworks/nucsim/internal/sim"
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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Duration  int                `json:"duration"`
	Names     []string           `json:"components"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run directory containing metadata.json and series.csv
// and returns the run ID.
func (s *Store) Save(scenario string, duration int, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Duration:  duration,
		Names:     result.Names,
		Metrics:   result.Metrics,
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

	if err := writeSeries(filepath.Join(runDir, "series.csv"), result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeSeries(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"step"}, result.Names...)
	header = append(header, "cumulative_release")
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(t))
		for _, kg := range result.Contained[i] {
			row = append(row, strconv.FormatFloat(kg, 'g', -1, 64))
		}
		row = append(row, strconv.FormatFloat(result.Released[i], 'g', -1, 64))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
