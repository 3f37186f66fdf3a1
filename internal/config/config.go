package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sky-flux/cadence"
)

// Config holds all configuration for the cadence CLI.
type Config struct {
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SchedulerConfig holds the engine parameters. An empty Weights list means
// the FSRS-5 defaults.
type SchedulerConfig struct {
	Weights          []float64       `mapstructure:"weights"`
	RequestRetention float64         `mapstructure:"request_retention"`
	MaximumInterval  int             `mapstructure:"maximum_interval"`
	EnableFuzz       bool            `mapstructure:"enable_fuzz"`
	LearningSteps    []time.Duration `mapstructure:"learning_steps"`
	RelearningSteps  []time.Duration `mapstructure:"relearning_steps"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
// An explicit path takes precedence over the search path.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("scheduler.weights", []float64{})
	v.SetDefault("scheduler.request_retention", cadence.DefaultRequestRetention)
	v.SetDefault("scheduler.maximum_interval", cadence.DefaultMaximumInterval)
	v.SetDefault("scheduler.enable_fuzz", true)
	v.SetDefault("scheduler.learning_steps", []string{"10m"})
	v.SetDefault("scheduler.relearning_steps", []string{"10m"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(homeDir(), ".cadence"))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CADENCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("scheduler.request_retention", "CADENCE_REQUEST_RETENTION")
	_ = v.BindEnv("scheduler.maximum_interval", "CADENCE_MAXIMUM_INTERVAL")
	_ = v.BindEnv("scheduler.enable_fuzz", "CADENCE_ENABLE_FUZZ")
	_ = v.BindEnv("logging.level", "CADENCE_LOG_LEVEL")
	_ = v.BindEnv("logging.format", "CADENCE_LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file: defaults + env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that configuration fields are set and consistent.
func (c *Config) Validate() error {
	s := c.Scheduler
	if n := len(s.Weights); n != 0 && n != len(cadence.Weights{}) {
		return fmt.Errorf("scheduler.weights must have %d values, got %d", len(cadence.Weights{}), n)
	}
	if s.RequestRetention <= 0 || s.RequestRetention >= 1 {
		return fmt.Errorf("scheduler.request_retention must be between 0 and 1 (exclusive)")
	}
	if s.MaximumInterval < 1 || s.MaximumInterval > cadence.MaximumIntervalLimit {
		return fmt.Errorf("scheduler.maximum_interval must be between 1 and %d", cadence.MaximumIntervalLimit)
	}
	for _, d := range s.LearningSteps {
		if d <= 0 {
			return fmt.Errorf("scheduler.learning_steps must be positive durations, got %s", d)
		}
	}
	for _, d := range s.RelearningSteps {
		if d <= 0 {
			return fmt.Errorf("scheduler.relearning_steps must be positive durations, got %s", d)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}
	return nil
}

// EngineConfig converts the scheduler section into a cadence.Config.
// Source and Logger are left for the caller.
func (s SchedulerConfig) EngineConfig() cadence.Config {
	cfg := cadence.Config{
		RequestRetention: s.RequestRetention,
		MaximumInterval:  s.MaximumInterval,
		EnableFuzz:       s.EnableFuzz,
		LearningSteps:    nonNil(s.LearningSteps),
		RelearningSteps:  nonNil(s.RelearningSteps),
	}
	copy(cfg.Weights[:], s.Weights)
	return cfg
}

// nonNil keeps an explicitly empty step list empty; cadence treats nil as
// "use the default step".
func nonNil(d []time.Duration) []time.Duration {
	if d == nil {
		return []time.Duration{}
	}
	return d
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
