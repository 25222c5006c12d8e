package storage

import (
	"encoding/json"
	"os"

	"github.com/repoworks/nucsim/internal/sim"
)

type ExportData struct {
	Scenario  string             `json:"scenario"`
	Steps     int                `json:"steps"`
	Names     []string           `json:"components"`
	Times     []int              `json:"times"`
	Contained [][]float64        `json:"contained_kg"`
	Released  []float64          `json:"cumulative_release_kg"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON writes a full run to a single JSON document.
func ExportJSON(path, scenario string, result *sim.Result) error {
	data := ExportData{
		Scenario:  scenario,
		Steps:     len(result.Times),
		Names:     result.Names,
		Times:     result.Times,
		Contained: result.Contained,
		Released:  result.Released,
		Metrics:   result.Metrics,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
