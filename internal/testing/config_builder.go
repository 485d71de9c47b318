package testing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/threadtable/internal/config"
)

// ConfigBuilder provides a fluent interface for creating test configurations.
type ConfigBuilder struct {
	config *config.Config
	t      *testing.T
}

// NewConfigBuilder starts from the defaults with a test catalog name.
func NewConfigBuilder(t *testing.T) *ConfigBuilder {
	cfg := config.Default()
	cfg.Name = "Test Profile"
	return &ConfigBuilder{config: cfg, t: t}
}

func (cb *ConfigBuilder) WithName(name string) *ConfigBuilder {
	cb.config.Name = name
	return cb
}

// WithOffsets replaces the offset list.
func (cb *ConfigBuilder) WithOffsets(offsets ...float64) *ConfigBuilder {
	cb.config.Offsets = offsets
	return cb
}

// WithGenders sets which thread genders are expanded.
func (cb *ConfigBuilder) WithGenders(internal, external bool) *ConfigBuilder {
	cb.config.HandleInternal = internal
	cb.config.HandleExternal = external
	return cb
}

func (cb *ConfigBuilder) WithReserveOriginal(keep bool) *ConfigBuilder {
	cb.config.ReserveOriginal = keep
	return cb
}

func (cb *ConfigBuilder) WithClassSeparator(sep string) *ConfigBuilder {
	cb.config.ClassSeparator = sep
	return cb
}

// WithFiles sets the input and output documents.
func (cb *ConfigBuilder) WithFiles(input, output string) *ConfigBuilder {
	cb.config.Input = input
	cb.config.Output = output
	return cb
}

func (cb *ConfigBuilder) WithMetricsTextfile(path string) *ConfigBuilder {
	cb.config.Metrics.Textfile = path
	return cb
}

// WithWatch sets the debounce delay and polling interval.
func (cb *ConfigBuilder) WithWatch(debounce, poll time.Duration) *ConfigBuilder {
	cb.config.Watch.Debounce = debounce
	cb.config.Watch.PollInterval = poll
	return cb
}

// Build returns the built configuration.
func (cb *ConfigBuilder) Build() *config.Config {
	return cb.config
}

// BuildAndSave writes the configuration as YAML to dir/threadtable.yaml and
// returns the file path.
func (cb *ConfigBuilder) BuildAndSave(dir string) string {
	cb.t.Helper()

	data, err := yaml.Marshal(cb.config)
	if err != nil {
		cb.t.Fatalf("Failed to marshal config: %v", err)
	}

	path := filepath.Join(dir, config.DefaultPath)
	if err := os.WriteFile(path, data, testFilePermissions); err != nil {
		cb.t.Fatalf("Failed to save config to %s: %v", path, err)
	}
	return path
}
