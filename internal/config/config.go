// Package config loads a RunConfig from a JSON or YAML file, chosen by
// extension.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
	"go.uber.org/zap"

	"github.com/region-odds/playoffsim/internal/engine"
)

// RunConfig is the on-disk shape of a region run: the externally facing
// fields plus the overridable-but-defaulted simulation constants. Zero
// values mean "use the engine's default" — see engine.RunConfig.withDefaults.
type RunConfig struct {
	Class  int `json:"class" yaml:"class"`
	Region int `json:"region" yaml:"region"`
	Season int `json:"season" yaml:"season"`

	Trials  int     `json:"trials" yaml:"trials"`
	RNGSeed *uint64 `json:"rngSeed" yaml:"rngSeed"`

	PlayoffSpots    int     `json:"playoffSpots" yaml:"playoffSpots"`
	PDCap           int     `json:"pdCap" yaml:"pdCap"`
	ClinchThreshold float64 `json:"clinchThreshold" yaml:"clinchThreshold"`
	ElimThreshold   float64 `json:"elimThreshold" yaml:"elimThreshold"`

	Workers int `json:"workers" yaml:"workers"`

	SchoolsFile string `json:"schoolsFile" yaml:"schoolsFile"`
	GamesFile   string `json:"gamesFile" yaml:"gamesFile"`
}

// Load reads and decodes path by its extension (.json, .yaml, or .yml).
// Returns an error rather than log.Fatalf, since this is a library
// entrypoint, not a CLI.
func Load(path string) (RunConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var c RunConfig
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(raw, &c); err != nil {
			return RunConfig{}, fmt.Errorf("config: bad JSON in %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return RunConfig{}, fmt.Errorf("config: bad YAML in %s: %w", path, err)
		}
	default:
		return RunConfig{}, fmt.Errorf("config: unsupported config file format %q", ext)
	}

	if c.Class == 0 || c.Region == 0 || c.Season == 0 {
		return RunConfig{}, fmt.Errorf("config: class, region, and season must be set")
	}
	if c.SchoolsFile == "" {
		return RunConfig{}, fmt.Errorf("config: schoolsFile must be set")
	}
	if c.GamesFile == "" {
		return RunConfig{}, fmt.Errorf("config: gamesFile must be set")
	}

	return c, nil
}

// LoadSchoolsAndGames reads the schools/games snapshot referenced by a
// RunConfig. Both files are JSON arrays, decoded with encoding/json — the
// snapshot itself is never YAML, only the run's own parameters are.
func LoadSchoolsAndGames(c RunConfig, schoolsOut, gamesOut interface{}) error {
	if err := decodeJSONFile(c.SchoolsFile, schoolsOut); err != nil {
		return fmt.Errorf("config: schools: %w", err)
	}
	if err := decodeJSONFile(c.GamesFile, gamesOut); err != nil {
		return fmt.Errorf("config: games: %w", err)
	}
	return nil
}

// ToEngineConfig translates the on-disk RunConfig into engine.RunConfig,
// wiring in logger as the engine's structured logger.
func (c RunConfig) ToEngineConfig(logger *zap.Logger) engine.RunConfig {
	return engine.RunConfig{
		Class:           c.Class,
		Region:          c.Region,
		Season:          c.Season,
		Trials:          c.Trials,
		RNGSeed:         c.RNGSeed,
		PlayoffSpots:    c.PlayoffSpots,
		PDCap:           c.PDCap,
		ClinchThreshold: c.ClinchThreshold,
		ElimThreshold:   c.ElimThreshold,
		Workers:         c.Workers,
		Logger:          logger,
	}
}

func decodeJSONFile(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("bad JSON in %s: %w", path, err)
	}
	return nil
}
