// ABOUTME: File logger for diagnostics that must not touch the terminal
// ABOUTME: Wraps zerolog writing to debug.log in the config directory

package debuglog

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	logFile *os.File
	logger  zerolog.Logger
	enabled bool
)

// Init opens the debug log in the given config directory.
// An empty configDir disables logging.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		enabled = false
		return nil
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		enabled = false
		return err
	}

	logPath := filepath.Join(configDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		enabled = false
		return err
	}

	logFile = f
	logger = zerolog.New(zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: "2006-01-02 15:04:05"}).
		With().Timestamp().Logger()
	enabled = true
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	enabled = false
}

// Log writes an info-level message
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Info().Msgf(format, args...)
}

// Warn writes a warning
func Warn(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Warn().Msgf(format, args...)
}

// Error logs an error with context; nil errors are ignored
func Error(context string, err error) {
	if err == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Error().Str("context", context).Err(err).Send()
}
