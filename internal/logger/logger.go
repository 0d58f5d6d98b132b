package logger

import (
	"log/slog"
	"os"

	"github.com/aurumx/reward-ledger/internal/config"
)

// NewLogger builds the process-wide JSON logger. Unknown level strings fall
// back to info; debug level also enables source locations.
func NewLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}))

	logger.Info("logger initialized", "level", level)
	return logger
}
