package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"starforge/internal/shared/config"
)

// Init installs the process-wide logger described by the loaded config.
func Init() {
	if config.GlobalConfig == nil {
		panic("config must be initialized before logger")
	}

	cfg := config.GlobalConfig.Logging
	slog.SetDefault(New(cfg, os.Stdout))

	slog.Debug("Logger initialized",
		"component", "logger",
		"level", ParseLevel(cfg.Level),
		"json_format", cfg.JSONFormat,
		"environment", config.GlobalConfig.Server.Environment,
	)
}

// New builds a logger writing to w. Command line tools pass stderr so their
// output stays clean.
func New(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	if cfg.JSONFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel accepts slog level names in any case, with optional offsets
// such as "warn+2". Anything else logs at info.
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}
