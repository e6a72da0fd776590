// Experiment configuration file support. The --config file is hujson
// (JSON with comments and trailing commas), standardized before
// unmarshalling; explicitly-set command-line flags win over file values.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// experimentConfig mirrors the run subcommand's tunables.
type experimentConfig struct {
	Seed       int64   `json:"seed"`
	Budget     int64   `json:"budget"`
	Alpha      float64 `json:"alpha"`
	Beta       float64 `json:"beta"`
	Input      string  `json:"input"`
	Oracle     string  `json:"oracle"`
	OracleType string  `json:"oracle_type"`
	Output     string  `json:"output"`
	Dynamic    bool    `json:"dynamic"`
}

// defaultExperiment returns the run defaults applied before file and flag
// overrides.
func defaultExperiment() experimentConfig {
	return experimentConfig{
		Seed:       1,
		Budget:     100_000,
		Alpha:      0.05,
		Beta:       0.2,
		OracleType: "edges",
	}
}

// loadExperiment reads and standardizes a hujson config file into cfg,
// overriding only the fields the file sets.
func loadExperiment(path string, cfg *experimentConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	if err = json.Unmarshal(standardized, cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	return nil
}
