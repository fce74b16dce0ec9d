package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, 10, cfg.Generation.NumTopicSamples)
	assert.Equal(t, 10, cfg.Generation.NumExampleSamples)
	assert.Equal(t, "en", cfg.Generation.InstructLang)
	assert.Equal(t, 10, cfg.Simulation.MaxRounds)
	assert.Equal(t, 4, cfg.Simulation.InnerMaxRounds)
	assert.Equal(t, 20, cfg.Filter.TopN)
	assert.Equal(t, 0, cfg.Model.MaxRetries)
	assert.Zero(t, cfg.Model.Timeout)
}

func TestLoadTimeoutFromEnv(t *testing.T) {
	t.Setenv("DIALOGSYNTH_MODEL__TIMEOUT", "90s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Model.Timeout)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dialogsynth.yaml")
	body := `
model:
  name: claude-3-5-sonnet
generation:
  num_topic_samples: 3
  instruct_lang: de
simulation:
  max_rounds: 8
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("DIALOGSYNTH_GENERATION__NUM_EXAMPLE_SAMPLES", "2")
	t.Setenv("DIALOGSYNTH_SIMULATION__CONTINUE_ON_ERROR", "true")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "claude-3-5-sonnet", cfg.Model.Name)
	assert.Equal(t, 3, cfg.Generation.NumTopicSamples)
	assert.Equal(t, 2, cfg.Generation.NumExampleSamples)
	assert.Equal(t, "de", cfg.Generation.InstructLang)
	assert.Equal(t, 8, cfg.Simulation.MaxRounds)
	assert.True(t, cfg.Simulation.ContinueOnError)
	assert.Equal(t, "sk-test", cfg.Providers.OpenAI.APIKey)
}

func TestSampleConfigKeepsSingleAttempt(t *testing.T) {
	cfg, err := Load("../../configs/dialogsynth.yaml")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Model.MaxRetries)
	assert.Zero(t, cfg.Model.Timeout)
	assert.Equal(t, "society_of_mind", cfg.Simulation.AgentType)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	bad := *cfg
	bad.Generation.InstructLang = "fr"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Simulation.MaxRounds = 0
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Generation.NumTopicSamples = -1
	assert.Error(t, bad.Validate())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "generation.num_topic_samples", envKey("DIALOGSYNTH_GENERATION__NUM_TOPIC_SAMPLES"))
	assert.Equal(t, "log_level", envKey("DIALOGSYNTH_LOG_LEVEL"))
}
