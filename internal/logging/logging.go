package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Options controls logger construction.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New returns a logger writing to opts.Output. Stdout carries the MCP stdio
// stream, so callers pass stderr.
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(opts.Output)

	level := logrus.InfoLevel
	if raw := strings.TrimSpace(opts.Level); raw != "" {
		parsed, err := logrus.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
			DisableColors:   true,
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timestampFormat})
	default:
		return nil, fmt.Errorf("unknown log format %q: must be text or json", opts.Format)
	}

	return logger, nil
}
