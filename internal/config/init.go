package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
)

const initHeader = `# threadtable configuration
# Offsets are added to MajorDia, PitchDia and MinorDia of every eligible
# thread entry; the signed offset is appended to the Class label.
`

// Example returns the configuration written by Init.
func Example() *Config {
	cfg := Default()
	cfg.Name = "ISO Metric profile (3D print)"
	cfg.Offsets = []float64{0.1, 0.2, -0.1}
	cfg.Input = "ThreadData/ISO.xml"
	cfg.Output = "ThreadData/ISO_custom.xml"
	return cfg
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return tterrors.New(tterrors.CategoryConfig, tterrors.SeverityFatal,
			fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path)
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return tterrors.InternalError("failed to marshal example configuration", err)
	}

	// #nosec G306 -- configuration is meant to be readable
	if err := os.WriteFile(path, append([]byte(initHeader), data...), 0o644); err != nil {
		return tterrors.WriteFailed(path, err)
	}
	return nil
}
