// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

var (
	// nullLogger is a logger that discards all log messages.
	nullLogger = &instance{log: hclog.NewNullLogger()}
)

// Level is the verbosity of the diagnostic logger.
type Level int

const (
	ERROR Level = iota
	WARN
	INFO
	DEBUG
	TRACE
)

var levelNames = [...]string{"ERROR", "WARN", "INFO", "DEBUG", "TRACE"}

func (l Level) String() string {
	if l < ERROR || l > TRACE {
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// LevelFromString returns the level named by level, INFO when it is unknown.
func LevelFromString(level string) Level {
	name := strings.ToUpper(strings.TrimSpace(level))
	for index, known := range levelNames {
		if name == known {
			return Level(index)
		}
	}
	return INFO
}

func (l Level) convertedLevel() hclog.Level {
	switch l {
	case TRACE:
		return hclog.Trace
	case DEBUG:
		return hclog.Debug
	case WARN:
		return hclog.Warn
	case ERROR:
		return hclog.Error
	default:
		return hclog.Info
	}
}

// Logger describes the interface that must be implemented by all loggers
type Logger interface {
	// WithName returns a new Logger instance with the specified name.
	WithName(name string) Logger

	// With returns a new Logger that always emits the given key/value pairs.
	With(args ...any) Logger

	// SetLevel updates the logger level.
	SetLevel(level Level)

	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var _ Logger = &instance{}

type instance struct {
	log hclog.Logger
}

// Options configures a new Logger.
type Options struct {
	Level Level
	// JSON switches from the human readable line format to one JSON object per line.
	JSON bool
	// TimeFn overrides the clock used for entry timestamps.
	TimeFn func() time.Time
}

// NewLogger creates a new logger instance writing on writer at the INFO level.
func NewLogger(writer io.Writer) Logger {
	return NewLoggerWithOptions(writer, Options{Level: INFO})
}

// NewLoggerWithOptions creates a new logger instance writing on writer.
func NewLoggerWithOptions(writer io.Writer, opts Options) Logger {
	timeFn := opts.TimeFn
	if timeFn == nil {
		timeFn = time.Now
	}

	return &instance{
		log: hclog.New(&hclog.LoggerOptions{
			JSONFormat: opts.JSON,
			Output:     writer,
			TimeFn:     timeFn,
			Level:      opts.Level.convertedLevel(),
		}),
	}
}

func (i instance) WithName(name string) Logger {
	return &instance{log: i.log.ResetNamed(name)}
}

func (i instance) With(args ...any) Logger {
	return &instance{log: i.log.With(args...)}
}

func (i instance) SetLevel(level Level) {
	i.log.SetLevel(level.convertedLevel())
}

func (i instance) Trace(msg string, args ...any) {
	i.log.Trace(msg, args...)
}

func (i instance) Debug(msg string, args ...any) {
	i.log.Debug(msg, args...)
}

func (i instance) Info(msg string, args ...any) {
	i.log.Info(msg, args...)
}

func (i instance) Warn(msg string, args ...any) {
	i.log.Warn(msg, args...)
}

func (i instance) Error(msg string, args ...any) {
	i.log.Error(msg, args...)
}
