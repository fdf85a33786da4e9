// Package logging holds the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Logger is the logger shared by all packages. It discards everything until
// Initialize enables debug output.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// RunID identifies the current harness run in logs and saved reports.
var RunID = uuid.New().String()

// Initialize sets up the logger. Logs are discarded unless debug is set,
// FAULTLINE_DEBUG=1 is exported, or a debug file is given.
func Initialize(debug bool, debugFile string) (io.Closer, error) {
	if os.Getenv("FAULTLINE_DEBUG") == "1" {
		debug = true
	}

	if envDebugFile := os.Getenv("FAULTLINE_DEBUG_FILE"); envDebugFile != "" && debugFile == "" {
		debugFile = envDebugFile
	}

	if !debug && debugFile == "" {
		Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return io.NopCloser(nil), nil
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)

	if debugFile != "" {
		if err := os.MkdirAll(filepath.Dir(debugFile), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		f, err := os.OpenFile(debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}

		out = f
		closer = f
	}

	handler := charmlog.NewWithOptions(out, charmlog.Options{
		Level:           charmlog.DebugLevel,
		ReportTimestamp: true,
		Prefix:          "faultline",
	})
	Logger = slog.New(handler).With(slog.String("run", RunID))

	Logger.Debug("debug logging initialized", slog.String("file", debugFile))

	return closer, nil
}
