// Package config loads the TOML configuration shared by the binaries.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/hailam/gomokuplay/internal/engine"
)

// Search configures the Monte-Carlo search.
type Search struct {
	Exploration      float64 `toml:"exploration"`
	MaxIterations    int     `toml:"max_iterations"`
	MoveTimeMs       int     `toml:"move_time_ms"`
	Seed             int64   `toml:"seed"`
	HeuristicRollout bool    `toml:"heuristic_rollout"`
	RandomRollout    bool    `toml:"random_rollout"`
}

// UI configures the desktop front-end.
type UI struct {
	Difficulty string `toml:"difficulty"` // easy, medium, hard
	HumanColor string `toml:"human_color"` // black, white
}

// Config is the full file layout.
type Config struct {
	Search Search `toml:"search"`
	UI     UI     `toml:"ui"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := engine.DefaultConfig()
	return &Config{
		Search: Search{
			Exploration:      cfg.Exploration,
			MaxIterations:    cfg.MaxIterations,
			MoveTimeMs:       int(cfg.MoveTime / time.Millisecond),
			Seed:             cfg.Seed,
			HeuristicRollout: cfg.HeuristicRollout,
			RandomRollout:    cfg.RandomRollout,
		},
		UI: UI{
			Difficulty: "medium",
			HumanColor: "black",
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file
// is not an error; it just yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if _, err := toml.DecodeFile(path, c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}
	return c, nil
}

// EngineConfig converts the search section into an engine configuration.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Exploration:      c.Search.Exploration,
		MaxIterations:    c.Search.MaxIterations,
		MoveTime:         time.Duration(c.Search.MoveTimeMs) * time.Millisecond,
		Seed:             c.Search.Seed,
		HeuristicRollout: c.Search.HeuristicRollout,
		RandomRollout:    c.Search.RandomRollout,
	}
}

// Difficulty maps the UI difficulty name onto an engine preset.
func (c *Config) Difficulty() engine.Difficulty {
	switch c.UI.Difficulty {
	case "easy":
		return engine.Easy
	case "hard":
		return engine.Hard
	}
	return engine.Medium
}
