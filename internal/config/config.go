// Package config loads the threadtable YAML configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "threadtable.yaml"

// EnvLogLevel overrides logging.level when set.
const EnvLogLevel = "THREADTABLE_LOG_LEVEL"

// Config is the on-disk configuration.
type Config struct {
	Name            string    `yaml:"name"`
	Offsets         []float64 `yaml:"offsets"`
	HandleInternal  bool      `yaml:"handle_internal"`
	HandleExternal  bool      `yaml:"handle_external"`
	ReserveOriginal bool      `yaml:"reserve_original"`
	ClassSeparator  string    `yaml:"class_separator"`
	OnlySizes       []float64 `yaml:"only_sizes"`

	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Watch   WatchConfig   `yaml:"watch"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls Prometheus export.
type MetricsConfig struct {
	// Textfile receives the registry after every run (node_exporter textfile collector).
	Textfile string `yaml:"textfile"`
	// Listen serves /metrics while watching, e.g. ":9110".
	Listen string `yaml:"listen"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	// PollInterval > 0 switches from filesystem notifications to polling.
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Load reads, expands and validates the configuration at path.
// .env.local and .env are loaded first; variables already set win.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, tterrors.ConfigNotFound(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tterrors.ReadFailed(path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, tterrors.Wrap(err, tterrors.CategoryConfig, tterrors.SeverityFatal, "failed to parse configuration").
			WithContext("path", path)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		loadEnvFiles()
		cfg := Default()
		if err := cfg.normalize(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}
