// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package superlog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ameshkin/superlogger/internal/config"
	"github.com/ameshkin/superlogger/internal/inspect"
	"github.com/ameshkin/superlogger/internal/logger"
	"github.com/ameshkin/superlogger/internal/record"
	"github.com/ameshkin/superlogger/internal/severity"
	"github.com/ameshkin/superlogger/internal/sink"
	"github.com/ameshkin/superlogger/internal/sink/echo"
	"github.com/ameshkin/superlogger/internal/sink/file"
	"github.com/ameshkin/superlogger/internal/sink/syslog"
)

const loggerName = "logger"

// DefaultLevel is used by Print.
const DefaultLevel = severity.Emergency

// Flag alters a single log call.
type Flag int

const (
	// Important bypasses the debug gate.
	Important Flag = iota + 1
	// Terminate closes the logger and ends the process once the call returns.
	Terminate
)

// Logger formats messages and delivers them to the configured sink. It is safe
// for concurrent use.
type Logger struct {
	id        string
	debug     bool
	important bool
	formatter *record.Formatter
	sink      sink.Sink
	// file is set only when the sink is a file resource.
	file *file.File
	exit func(int)
	log  logger.Logger

	lock      sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// New validates cfg and acquires the configured sink. Errors acquiring a file
// resource surface here, before anything is logged.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	id := uuid.NewString()
	l := &Logger{
		id:        id,
		debug:     cfg.Debug,
		important: cfg.Important,
		formatter: record.NewFormatter(cfg, record.WithClock(options.clock)),
		exit:      options.exit,
		log:       logger.ForComponent(ctx, loggerName).With("instance", id),
	}

	switch cfg.Sink {
	case config.SinkEcho:
		inspector := options.inspector
		if inspector == nil && cfg.Inspector {
			inspector = inspect.New()
		}
		l.sink = echo.New(options.output, inspector)
	case config.SinkSyslog:
		backend := options.backend
		if backend == nil {
			var err error
			if backend, err = syslog.NewBackend(cfg.SyslogBackend, cfg.SyslogTag, options.stderr); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrResource, err)
			}
		}
		l.sink = syslog.New(backend)
	case config.SinkFile:
		fileOptions := file.OptionsFromConfig(cfg)
		fileOptions.Clock = options.clock
		resource, err := file.Open(fileOptions)
		if err != nil {
			return nil, err
		}
		l.file = resource
		l.sink = resource
		l.log.Debug("log resource acquired", "path", resource.Path())
	default:
		l.sink = sink.Nop{}
	}

	l.log.Debug("logger ready", "sink", string(cfg.Sink), "debug", cfg.Debug)
	return l, nil
}

// ID returns the unique identifier of the logger instance.
func (l *Logger) ID() string {
	return l.id
}

// Log records input at level. Unless debug mode, the important override or the
// Important flag is set, the call does nothing. Maps, slices, arrays and structs
// are structured payloads; every other value is logged as text.
func (l *Logger) Log(input any, level severity.Level, flags ...Flag) error {
	return l.logSkip(1, input, level, flags)
}

// Print logs input at DefaultLevel.
func (l *Logger) Print(input any, flags ...Flag) error {
	return l.logSkip(1, input, DefaultLevel, flags)
}

func (l *Logger) Debug(input any, flags ...Flag) error {
	return l.logSkip(1, input, severity.Debug, flags)
}

func (l *Logger) Info(input any, flags ...Flag) error {
	return l.logSkip(1, input, severity.Info, flags)
}

func (l *Logger) Notice(input any, flags ...Flag) error {
	return l.logSkip(1, input, severity.Notice, flags)
}

func (l *Logger) Warning(input any, flags ...Flag) error {
	return l.logSkip(1, input, severity.Warning, flags)
}

func (l *Logger) Error(input any, flags ...Flag) error {
	return l.logSkip(1, input, severity.Error, flags)
}

func (l *Logger) Alert(input any, flags ...Flag) error {
	return l.logSkip(1, input, severity.Alert, flags)
}

func (l *Logger) Critical(input any, flags ...Flag) error {
	return l.logSkip(1, input, severity.Critical, flags)
}

func (l *Logger) Emergency(input any, flags ...Flag) error {
	return l.logSkip(1, input, severity.Emergency, flags)
}

// logSkip must be called directly by the exported entry points: skip counts
// the frames between it and the user code.
func (l *Logger) logSkip(skip int, input any, level severity.Level, flags []Flag) error {
	important, terminate := false, false
	for _, flag := range flags {
		switch flag {
		case Important:
			important = true
		case Terminate:
			terminate = true
		}
	}

	if terminate {
		defer l.terminate()
	}

	if !l.debug && !l.important && !important {
		return nil
	}

	rec, err := l.formatter.FormatSkip(skip+1, record.PayloadOf(input), level)
	if err != nil {
		return err
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if err := l.sink.Emit(rec); err != nil {
		l.log.Error("log record not delivered", "level", rec.Label, "error", err.Error())
		return closedAsInvalidState(err)
	}
	return nil
}

func (l *Logger) terminate() {
	if err := l.Close(); err != nil {
		l.log.Error("closing logger before exit", "error", err.Error())
	}
	l.log.Debug("terminating process")
	l.exit(0)
}

// Write appends line to the file resource without any formatting.
func (l *Logger) Write(line string) error {
	if l.file == nil {
		return ErrInvalidState
	}

	l.lock.Lock()
	defer l.lock.Unlock()
	return closedAsInvalidState(l.file.Write(line))
}

// Close releases the sink. Only the first call has effect; later calls return
// its result.
func (l *Logger) Close() error {
	l.closeOnce.Do(func() {
		l.lock.Lock()
		defer l.lock.Unlock()

		l.closeErr = l.sink.Close()
		l.log.Debug("logger closed", "lines", l.linesLocked())
	})
	return l.closeErr
}

// Lines returns how many writes reached the file resource.
func (l *Logger) Lines() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.linesLocked()
}

func (l *Logger) linesLocked() int {
	if l.file == nil {
		return 0
	}
	return l.file.Lines()
}

// LastLine returns the last line written to the file resource.
func (l *Logger) LastLine() string {
	if l.file == nil {
		return ""
	}

	l.lock.Lock()
	defer l.lock.Unlock()
	return l.file.LastLine()
}

func closedAsInvalidState(err error) error {
	if errors.Is(err, file.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return err
}
