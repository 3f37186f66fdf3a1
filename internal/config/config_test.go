package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sky-flux/cadence"
)

func validCfg() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			RequestRetention: 0.9,
			MaximumInterval:  36500,
			EnableFuzz:       true,
			LearningSteps:    []time.Duration{10 * time.Minute},
			RelearningSteps:  []time.Duration{10 * time.Minute},
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// isolate points the config search path at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Scheduler.Weights)
	assert.Equal(t, cadence.DefaultRequestRetention, cfg.Scheduler.RequestRetention)
	assert.Equal(t, cadence.DefaultMaximumInterval, cfg.Scheduler.MaximumInterval)
	assert.True(t, cfg.Scheduler.EnableFuzz)
	assert.Equal(t, []time.Duration{10 * time.Minute}, cfg.Scheduler.LearningSteps)
	assert.Equal(t, []time.Duration{10 * time.Minute}, cfg.Scheduler.RelearningSteps)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, `
scheduler:
  request_retention: 0.85
  maximum_interval: 365
  enable_fuzz: false
  learning_steps: ["1m", "10m"]
  relearning_steps: ["5m"]
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.85, cfg.Scheduler.RequestRetention, 1e-9)
	assert.Equal(t, 365, cfg.Scheduler.MaximumInterval)
	assert.False(t, cfg.Scheduler.EnableFuzz)
	assert.Equal(t, []time.Duration{time.Minute, 10 * time.Minute}, cfg.Scheduler.LearningSteps)
	assert.Equal(t, []time.Duration{5 * time.Minute}, cfg.Scheduler.RelearningSteps)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadSearchPath(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "scheduler:\n  maximum_interval: 100\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Scheduler.MaximumInterval)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CADENCE_REQUEST_RETENTION", "0.8")
	t.Setenv("CADENCE_ENABLE_FUZZ", "false")
	t.Setenv("CADENCE_LOG_LEVEL", "warn")
	t.Setenv("CADENCE_SCHEDULER_MAXIMUM_INTERVAL", "180")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, cfg.Scheduler.RequestRetention, 1e-9)
	assert.False(t, cfg.Scheduler.EnableFuzz)
	assert.Equal(t, 180, cfg.Scheduler.MaximumInterval)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalid(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "scheduler:\n  request_retention: 1.5\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request_retention")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"weights count", func(c *Config) { c.Scheduler.Weights = []float64{1, 2, 3} }, "scheduler.weights"},
		{"retention zero", func(c *Config) { c.Scheduler.RequestRetention = 0 }, "request_retention"},
		{"retention one", func(c *Config) { c.Scheduler.RequestRetention = 1 }, "request_retention"},
		{"max interval", func(c *Config) { c.Scheduler.MaximumInterval = 0 }, "maximum_interval"},
		{"max interval overflow", func(c *Config) { c.Scheduler.MaximumInterval = cadence.MaximumIntervalLimit + 1 }, "maximum_interval"},
		{"learning step", func(c *Config) { c.Scheduler.LearningSteps = []time.Duration{-time.Minute} }, "learning_steps"},
		{"relearning step", func(c *Config) { c.Scheduler.RelearningSteps = []time.Duration{0} }, "relearning_steps"},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCfg()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, validCfg().Validate())
}

func TestEngineConfig(t *testing.T) {
	cfg := validCfg()
	cfg.Scheduler.RelearningSteps = nil

	ec := cfg.Scheduler.EngineConfig()
	assert.Equal(t, cadence.Weights{}, ec.Weights)
	assert.NotNil(t, ec.RelearningSteps)
	assert.Empty(t, ec.RelearningSteps)

	s, err := cadence.NewScheduler(ec)
	require.NoError(t, err)
	assert.Equal(t, cadence.DefaultWeights, s.Config().Weights)
	assert.Empty(t, s.Config().RelearningSteps)
}

func TestEngineConfigWeights(t *testing.T) {
	cfg := validCfg()
	cfg.Scheduler.Weights = cadence.DefaultWeights[:]

	ec := cfg.Scheduler.EngineConfig()
	assert.Equal(t, cadence.DefaultWeights, ec.Weights)
}
