package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if tte, ok := As(err); ok {
		return a.exitCodeFromCategory(tte)
	}

	return 1
}

// exitCodeFromCategory maps ThreadTableError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromCategory(err *ThreadTableError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryDocument:
		return 3 // Unreadable thread document
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryFileSystem:
		return 11 // I/O error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if tte, ok := As(err); ok {
		return a.formatThreadTable(tte)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatThreadTable formats a ThreadTableError for display.
func (a *CLIErrorAdapter) formatThreadTable(err *ThreadTableError) string {
	if a.verbose {
		return err.Error()
	}

	msg := err.Message
	if details := formatContext(err.Context); details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, details)
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return msg
	default:
		return fmt.Sprintf("%s: %s", err.Category, msg)
	}
}

func formatContext(ctx ContextFields) string {
	if len(ctx) == 0 {
		return ""
	}
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return strings.Join(parts, ", ")
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	fmt.Fprintf(a.out, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if tte, ok := As(err); ok {
		return tte.Category == CategoryInternal || tte.Category == CategoryRuntime
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if tte, ok := As(err); ok {
		level := a.slogLevelFromSeverity(tte.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(tte.Category)),
		}
		for k, v := range tte.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if tte.Cause != nil {
			attrs = append(attrs, slog.String("cause", tte.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, tte.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts ThreadTableError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
