package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the application logger. The TUI owns stdout, so debug
// logging goes to a file; with no path configured it is a no-op.
func New(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
