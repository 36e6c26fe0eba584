package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Init points the package logger at <dir>/certgen.log.
// Until Init is called everything is discarded.
func Init(dir string, verbose bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	logFile, err := os.OpenFile(filepath.Join(dir, "certgen.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	Logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: level,
	}))
	return nil
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
