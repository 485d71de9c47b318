package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/threadtable/internal/logfields"
)

// envFiles are tried in order. godotenv never overrides a variable that is
// already set, so earlier files take precedence over later ones.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles applies the env files that exist. A file that fails to parse
// is skipped with a warning; the configuration file may not need it.
func loadEnvFiles() {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("Ignoring unreadable env file", logfields.Path(f), logfields.Error(err))
		}
	}
}
