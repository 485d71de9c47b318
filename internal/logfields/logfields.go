package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID        = "run_id"
	KeyStage        = "stage"
	KeyDurationMS   = "duration_ms"
	KeyInput        = "input"
	KeyOutput       = "output"
	KeyConfig       = "config"
	KeyCatalog      = "catalog"
	KeySize         = "size"
	KeyIndex        = "index"
	KeyDesignation  = "designation"
	KeyDesignations = "designations"
	KeyOffsets      = "offsets"
	KeyTrigger      = "trigger"
	KeyPath         = "path"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr          { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func Input(p string) slog.Attr           { return slog.String(KeyInput, p) }
func Output(p string) slog.Attr          { return slog.String(KeyOutput, p) }
func Config(p string) slog.Attr          { return slog.String(KeyConfig, p) }
func Catalog(name string) slog.Attr      { return slog.String(KeyCatalog, name) }
func Size(s string) slog.Attr            { return slog.String(KeySize, s) }
func Designation(d string) slog.Attr     { return slog.String(KeyDesignation, d) }
func Offsets(o []float64) slog.Attr      { return slog.Any(KeyOffsets, o) }
func Trigger(t string) slog.Attr         { return slog.String(KeyTrigger, t) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
