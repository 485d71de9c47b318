package config

import (
	"fmt"
	"math"
	"os"

	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
)

// normalize canonicalises enumerations. Unknown spellings are rejected
// rather than silently replaced.
func (c *Config) normalize() error {
	level := string(c.Logging.Level)
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = env
	}
	lvl, err := logLevelNormalizer.NormalizeWithError(level)
	if err != nil {
		return tterrors.InvalidConfig("logging.level", err.Error())
	}
	c.Logging.Level = lvl

	format, err := logFormatNormalizer.NormalizeWithError(string(c.Logging.Format))
	if err != nil {
		return tterrors.InvalidConfig("logging.format", err.Error())
	}
	c.Logging.Format = format
	return nil
}

// Validate checks values the pipeline or watcher cannot run with. An empty
// name is accepted here because the command line may still supply one.
func (c *Config) Validate() error {
	for i, o := range c.Offsets {
		if math.IsNaN(o) || math.IsInf(o, 0) {
			return tterrors.InvalidConfig("offsets", fmt.Sprintf("offset %d is not finite", i))
		}
	}
	for i, s := range c.OnlySizes {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return tterrors.InvalidConfig("only_sizes", fmt.Sprintf("size %d is not finite", i))
		}
	}
	if c.Watch.Debounce < 0 {
		return tterrors.InvalidConfig("watch.debounce", "must not be negative")
	}
	if c.Watch.PollInterval < 0 {
		return tterrors.InvalidConfig("watch.poll_interval", "must not be negative")
	}
	return nil
}

// Warnings lists settings that are valid but probably not intended.
func (c *Config) Warnings() []string {
	var out []string
	if !c.HandleInternal && !c.HandleExternal {
		out = append(out, "neither handle_internal nor handle_external is set; every thread entry will be dropped")
	}
	if len(c.Offsets) == 0 && !c.ReserveOriginal {
		out = append(out, "offsets is empty and reserve_original is false; every thread entry will be dropped")
	}
	if c.Input != "" && c.Input == c.Output && c.Input != "-" {
		out = append(out, "input and output are the same file; the source table is overwritten")
	}
	return out
}
