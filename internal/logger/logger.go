// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation defaults. Three backups of roughly a day each are kept.
const (
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 3
)

type options struct {
	output   io.Writer
	filePath string
	json     bool
	jsonSet  bool
}

// Option configures NewLogger.
type Option func(*options)

// WithFile additionally writes log entries to a rotating file at path.
func WithFile(path string) Option {
	return func(o *options) {
		o.filePath = path
	}
}

// WithOutput replaces stdout as the primary destination.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithJSON forces the JSON formatter on or off regardless of ENVIRONMENT.
func WithJSON(enabled bool) Option {
	return func(o *options) {
		o.json = enabled
		o.jsonSet = true
	}
}

// NewLogger creates a new configured logger instance
func NewLogger(logLevel string, opts ...Option) *logrus.Logger {
	o := &options{output: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	logger := logrus.New()

	out := o.output
	if o.filePath != "" {
		out = io.MultiWriter(out, NewRotatingFile(o.filePath))
	}
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	useJSON := os.Getenv("ENVIRONMENT") == "production"
	if o.jsonSet {
		useJSON = o.json
	}
	if useJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   o.filePath == "",
		})
	}

	return logger
}

// NewRotatingFile returns a size and age bounded log file writer.
func NewRotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		LocalTime:  true,
	}
}
