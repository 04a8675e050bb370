package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Open creates a logger writing to blitz.log inside dataDir. The TUI owns
// the terminal, so nothing may log to stdout while a program is running.
func Open(dataDir, level string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	path := filepath.Join(dataDir, "blitz.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return log, f, nil
}

// Nop returns a disabled logger for tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
