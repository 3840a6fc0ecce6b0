package errors

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"

	"github.com/ScorpionResponse/pelican/internal/logfields"
)

// CLIErrorAdapter translates an unrecovered error into a critical log record
// and a process exit code.
type CLIErrorAdapter struct {
	debug  bool
	logger *slog.Logger
	exit   func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter. In debug mode Report
// re-raises the error as a panic so the full stack is printed.
func NewCLIErrorAdapter(debug bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		debug:  debug,
		logger: logger,
		exit:   os.Exit,
	}
}

// ExitCodeFor determines the exit code for an error: the error's own code if
// any error in the chain carries one, otherwise 1.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if stderrors.As(err, &coder) {
		if code := coder.ExitCode(); code != 0 {
			return code
		}
	}
	return 1
}

// Report logs err as a critical failure and returns its exit code.
// It panics with err when the adapter was created in debug mode.
func (a *CLIErrorAdapter) Report(err error) int {
	if err == nil {
		return 0
	}
	a.logError(err)
	if a.debug {
		panic(err)
	}
	return a.ExitCodeFor(err)
}

// HandleError reports err and terminates the process with the resulting exit code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	a.exit(a.Report(err))
}

func (a *CLIErrorAdapter) logError(err error) {
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Log(context.Background(), logfields.LevelCritical, err.Error())
		return
	}
	attrs := []slog.Attr{
		slog.String("category", string(classified.Category())),
		slog.String("severity", string(classified.Severity())),
	}
	if classified.Cause() != nil {
		attrs = append(attrs, logfields.Error(classified.Cause()))
	}
	for k, v := range classified.Context() {
		attrs = append(attrs, slog.Any(k, v))
	}
	a.logger.LogAttrs(context.Background(), logfields.LevelCritical, classified.Message(), attrs...)
}
