package errors

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Process exit codes consumed by the invoking CI pipeline.
const (
	ExitSuccess     = 0
	ExitBuildFailed = 1 // an invoked generator reported failure
	ExitEnvironment = 2 // workspace unresolvable or output directory uncreatable
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the docsbuild CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if be, ok := err.(*BuildError); ok {
		return a.exitCodeFromBuildError(be)
	}

	return ExitBuildFailed
}

// exitCodeFromBuildError maps BuildError categories to exit codes.
func (a *CLIErrorAdapter) exitCodeFromBuildError(err *BuildError) int {
	switch err.Category {
	case CategoryEnvironment, CategoryConfig:
		return ExitEnvironment
	default:
		return ExitBuildFailed
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if be, ok := err.(*BuildError); ok {
		if a.verbose {
			return fmt.Sprintf("ERROR: %s", be.Error())
		}
		return fmt.Sprintf("ERROR: %s", be.Message)
	}

	return fmt.Sprintf("ERROR: %v", err)
}

// HandleError processes an error and exits the program with the appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	a.logError(err)
	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(exitCode)
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if be, ok := err.(*BuildError); ok {
		level := slog.LevelError
		if be.Severity == SeverityWarning {
			level = slog.LevelWarn
		}
		attrs := []slog.Attr{
			slog.String("category", string(be.Category)),
		}
		if be.Cause != nil {
			attrs = append(attrs, slog.Any("cause", be.Cause))
		}
		a.logger.LogAttrs(context.Background(), level, be.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}
