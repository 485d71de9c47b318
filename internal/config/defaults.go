package config

import "time"

const defaultDebounce = 500 * time.Millisecond

// Default returns the configuration used when a key is not set. YAML is
// decoded on top of it, so omitted keys keep these values.
func Default() *Config {
	return &Config{
		HandleInternal: true,
		HandleExternal: true,
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
		Watch: WatchConfig{
			Debounce: defaultDebounce,
		},
	}
}
