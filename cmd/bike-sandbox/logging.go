package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/trickbike/config"
)

// rotationClock names rotated backups
var rotationClock = time.Now

// setupLogging opens the debug log file when enabled
// Output never goes to stdout or stderr, the terminal belongs to the renderer
// A file above MaxSize is renamed to a timestamped backup before opening
func setupLogging(debug bool, cfg config.LogConfig) (*os.File, zerolog.Logger) {
	if !debug {
		return nil, zerolog.New(io.Discard)
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, zerolog.New(io.Discard)
	}

	logPath := filepath.Join(cfg.Dir, cfg.File)
	var rotateErr error
	if info, err := os.Stat(logPath); err == nil && info.Size() > cfg.MaxSize {
		backup := filepath.Join(cfg.Dir, fmt.Sprintf("%s.%s", cfg.File, rotationClock().Format("20060102-150405")))
		rotateErr = os.Rename(logPath, backup)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, zerolog.New(io.Discard)
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(f).Level(level).With().Timestamp().Str("app", "bike-sandbox").Logger()
	logger.Info().Str("path", logPath).Msg("logging started")
	if rotateErr != nil {
		// Rotation failed, the oversized file keeps growing
		logger.Warn().Err(rotateErr).Msg("Log rotation failed")
	}
	return f, logger
}
