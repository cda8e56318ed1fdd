// Package logging builds the zap loggers used by the command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a development logger (debug level, console encoding) when
// verbose, a production logger otherwise. Both write to stderr so that
// command output on stdout stays clean.
func New(verbose bool) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if verbose {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stderr"}
		logger, err = z.Build()
	} else {
		z := zap.NewProductionConfig()
		z.OutputPaths = []string{"stderr"}
		logger, err = z.Build()
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger.Sugar(), nil
}

// Sync flushes logger, ignoring the error stderr reports on some platforms.
func Sync(logger *zap.SugaredLogger) {
	_ = logger.Sync()
}
