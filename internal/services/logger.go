package services

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger defines common logging interface for all services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ProductionLogger adapts zerolog to the key/value Logger interface.
type ProductionLogger struct {
	logger zerolog.Logger
}

// NewProductionLogger writes JSON lines to w, tagged with the service name.
func NewProductionLogger(w io.Writer, service string, level zerolog.Level) *ProductionLogger {
	return &ProductionLogger{
		logger: zerolog.New(w).Level(level).With().Timestamp().Str("service", service).Logger(),
	}
}

// NewConsoleLogger is the human-readable variant used in development.
func NewConsoleLogger(w io.Writer, service string, level zerolog.Level) *ProductionLogger {
	return NewProductionLogger(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}, service, level)
}

func (p *ProductionLogger) Info(msg string, keysAndValues ...interface{}) {
	p.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (p *ProductionLogger) Error(msg string, keysAndValues ...interface{}) {
	p.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (p *ProductionLogger) Debug(msg string, keysAndValues ...interface{}) {
	p.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (p *ProductionLogger) Warn(msg string, keysAndValues ...interface{}) {
	p.logger.Warn().Fields(keysAndValues).Msg(msg)
}

// NoOpLogger is a logger that does nothing (for testing)
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}

// ParseLevel maps LOG_LEVEL values to zerolog levels, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Environment-based logger factory
func NewLogger(service string) Logger {
	env := os.Getenv("GO_ENV")
	if env == "test" {
		return &NoOpLogger{}
	}

	level := ParseLevel(os.Getenv("LOG_LEVEL"))
	if env == "production" {
		return NewProductionLogger(os.Stdout, service, level)
	}
	return NewConsoleLogger(os.Stdout, service, level)
}
