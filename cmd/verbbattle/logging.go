package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/verb-battle/internal/config"
	"github.com/KirkDiggler/verb-battle/internal/errors"
)

// setupLogging installs the default slog handler. With toFile set, logs go
// to cfg.File so the play screen keeps the terminal.
func setupLogging(cfg config.LogConfig, toFile bool) (func(), error) {
	var out io.Writer = os.Stderr
	closer := func() {}

	if toFile {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create log directory")
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // operator supplied path
		if err != nil {
			return nil, errors.Wrap(err, "failed to open log file")
		}
		out = f
		closer = func() { _ = f.Close() }
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(handler))
	return closer, nil
}
