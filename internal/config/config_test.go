package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
name: "ISO Metric profile (3D print)"
offsets: [0.1, 0.2, -0.1]
handle_internal: true
handle_external: false
reserve_original: true
class_separator: "@"
only_sizes: [3, 4]
input: in.xml
output: out.xml
logging:
  level: DEBUG
  format: json
metrics:
  textfile: /tmp/threadtable.prom
  listen: ":9110"
watch:
  debounce: 250ms
  poll_interval: 2s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ISO Metric profile (3D print)", cfg.Name)
	assert.Equal(t, []float64{0.1, 0.2, -0.1}, cfg.Offsets)
	assert.True(t, cfg.HandleInternal)
	assert.False(t, cfg.HandleExternal)
	assert.True(t, cfg.ReserveOriginal)
	assert.Equal(t, "@", cfg.ClassSeparator)
	assert.Equal(t, []float64{3, 4}, cfg.OnlySizes)
	assert.Equal(t, "in.xml", cfg.Input)
	assert.Equal(t, "out.xml", cfg.Output)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "/tmp/threadtable.prom", cfg.Metrics.Textfile)
	assert.Equal(t, ":9110", cfg.Metrics.Listen)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, 2*time.Second, cfg.Watch.PollInterval)
}

func TestLoad_DefaultsForOmittedKeys(t *testing.T) {
	path := writeConfig(t, "name: Minimal\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.HandleInternal)
	assert.True(t, cfg.HandleExternal)
	assert.False(t, cfg.ReserveOriginal)
	assert.Empty(t, cfg.ClassSeparator)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, defaultDebounce, cfg.Watch.Debounce)
	assert.Zero(t, cfg.Watch.PollInterval)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("THREADTABLE_TEST_PROFILE", "Expanded")
	path := writeConfig(t, "name: ${THREADTABLE_TEST_PROFILE}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Expanded", cfg.Name)
}

func TestLoad_DotEnv(t *testing.T) {
	const key = "THREADTABLE_TEST_DOTENV_NAME"
	dir := t.TempDir()
	chdir(t, dir)
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=from-dotenv\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte("name: ${"+key+"}\n"), 0o600))

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Name)
}

func TestLoad_MalformedDotEnvIsReported(t *testing.T) {
	const key = "THREADTABLE_TEST_DOTENV_BROKEN"
	dir := t.TempDir()
	chdir(t, dir)
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=\"unterminated\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte("name: Plain\n"), 0o600))

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, "Plain", cfg.Name)
	assert.Empty(t, os.Getenv(key))

	got := logs.String()
	assert.Contains(t, got, "level=WARN")
	assert.Contains(t, got, "Ignoring unreadable env file")
	assert.Contains(t, got, ".env")
}

func TestLoad_LogLevelEnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	path := writeConfig(t, "name: X\nlogging:\n  level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, tterrors.IsCategory(err, tterrors.CategoryConfig))
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "offsets: [1, 2\n"))
		require.Error(t, err)
		assert.True(t, tterrors.IsCategory(err, tterrors.CategoryConfig))
	})

	t.Run("non-numeric offset", func(t *testing.T) {
		_, err := Load(writeConfig(t, "offsets: [abc]\n"))
		require.Error(t, err)
	})

	t.Run("unknown log level", func(t *testing.T) {
		_, err := Load(writeConfig(t, "logging:\n  level: chatty\n"))
		require.Error(t, err)
		tte, ok := tterrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "logging.level", tte.Context["field"])
	})

	t.Run("negative debounce", func(t *testing.T) {
		_, err := Load(writeConfig(t, "watch:\n  debounce: -1s\n"))
		require.Error(t, err)
		assert.True(t, tterrors.IsCategory(err, tterrors.CategoryConfig))
	})
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().HandleInternal, cfg.HandleInternal)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
}

func TestWarnings(t *testing.T) {
	cfg := Default()
	cfg.Offsets = []float64{0.1}
	assert.Empty(t, cfg.Warnings())

	cfg.HandleInternal = false
	cfg.HandleExternal = false
	cfg.Input = "a.xml"
	cfg.Output = "a.xml"
	assert.Len(t, cfg.Warnings(), 2)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Example().Name, cfg.Name)
	assert.Equal(t, Example().Offsets, cfg.Offsets)
	assert.Equal(t, defaultDebounce, cfg.Watch.Debounce)

	err = Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(path, true))
}

func TestNormalizeLogSettings(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" WARNING "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("bogus"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat(""))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
