package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.0-flash-001"}, cfg.Gemini.Models)
	assert.Equal(t, 0.35, cfg.Matcher.Threshold)
	assert.Equal(t, 3.0, cfg.Matcher.KeywordBonus)
	assert.Equal(t, "lexical", cfg.Matcher.Embedder)
	assert.Equal(t, 100, cfg.Game.StartingWillingness)
	assert.Equal(t, 10, cfg.Game.Penalties.RepeatGreeting)
	assert.Equal(t, "data/scenario_generated.json", cfg.Game.GeneratedPath)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	yaml := `
matcher:
  threshold: 0.5
  embedder: ollama
game:
  max_turns: 12
  penalties:
    insult: 30
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("GOFIGURE_GAME_STARTING_WILLINGNESS", "60")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Matcher.Threshold)
	assert.Equal(t, "ollama", cfg.Matcher.Embedder)
	assert.Equal(t, 12, cfg.Game.MaxTurns)
	assert.Equal(t, 30, cfg.Game.Penalties.Insult)
	assert.Equal(t, 2, cfg.Game.Penalties.Question)
	assert.Equal(t, 60, cfg.Game.StartingWillingness)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}
