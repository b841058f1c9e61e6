package testutil

import (
	"io"
	"log/slog"

	"github.com/HendryAvila/focusmate/internal/logger"
)

func NoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
}
