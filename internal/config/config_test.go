package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/gomokuplay/internal/engine"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, engine.DefaultConfig(), cfg.EngineConfig())
	assert.Equal(t, engine.Medium, cfg.Difficulty())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[search]
exploration = 0.8
max_iterations = 2500
move_time_ms = 400
seed = 99
heuristic_rollout = true
random_rollout = false

[ui]
difficulty = "hard"
human_color = "white"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	ec := cfg.EngineConfig()
	assert.Equal(t, 0.8, ec.Exploration)
	assert.Equal(t, 2500, ec.MaxIterations)
	assert.Equal(t, 400*time.Millisecond, ec.MoveTime)
	assert.Equal(t, int64(99), ec.Seed)
	assert.True(t, ec.HeuristicRollout)
	assert.False(t, ec.RandomRollout)

	assert.Equal(t, engine.Hard, cfg.Difficulty())
	assert.Equal(t, "white", cfg.UI.HumanColor)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[search]\nmax_iterations = 42\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Search.MaxIterations)
	assert.Equal(t, 1.2, cfg.Search.Exploration, "unset keys keep their defaults")
	assert.Equal(t, "medium", cfg.UI.Difficulty)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml = = ="), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
