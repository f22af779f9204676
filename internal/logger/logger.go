package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/avoronova/sympathy/internal/config"
)

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// Init sets up the global logger from the logging config.
// Safe to call multiple times.
func Init(cfg *config.LoggingConfig) {
	mu.Lock()
	defer mu.Unlock()

	level := "info"
	format := "text"
	if cfg != nil {
		level = cfg.Level
		format = cfg.Format
	}

	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger = slog.New(handler)
}

// L returns the global logger. Always returns a non-nil instance.
func L() *slog.Logger {
	mu.RLock()
	if logger != nil {
		defer mu.RUnlock()
		return logger
	}
	mu.RUnlock()

	Init(nil)

	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
