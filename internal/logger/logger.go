package logger

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/fitstudio/config"
	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. An empty level means info and
// an empty format means json.
func Setup(cfg config.LogConfig) error {
	return Configure(logrus.StandardLogger(), cfg)
}

func Configure(l *logrus.Logger, cfg config.LogConfig) error {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	l.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return nil
}
