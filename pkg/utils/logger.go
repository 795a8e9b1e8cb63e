package utils

import (
	"fmt"
	"io"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

// NewLogger builds the structured logger described by cfg, writing to w.
func NewLogger(cfg LogConfig, w io.Writer) (log.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	opts := []log.Option{log.LevelOption(level)}
	switch strings.ToLower(cfg.Format) {
	case "", "console", "text":
		opts = append(opts, log.ColorOption(false))
	case "json":
		opts = append(opts, log.OutputJSONOption())
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}
	return log.NewLogger(w, opts...), nil
}
