// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/ameshkin/superlogger/internal/config"
	"github.com/ameshkin/superlogger/internal/logger"
	"github.com/ameshkin/superlogger/internal/severity"
	"github.com/ameshkin/superlogger/internal/superlog"
)

// logOptions holds the options set for the current log invocation.
type logOptions struct {
	configPath string
	message    string
	input      any
	level      severity.Level
	flags      []superlog.Flag

	out    io.Writer
	errOut io.Writer
	exit   func(int)
}

// validate validates the log options and returns an error if something is wrong.
func (o *logOptions) validate() error {
	if o.message == "" {
		return errNoMessage
	}
	return nil
}

// execute builds a logger from the configuration and emits the message.
func (o *logOptions) execute(ctx context.Context) error {
	return withLogger(ctx, o.configPath, o.loggerOptions(), func(log *superlog.Logger) error {
		if err := log.Log(o.input, o.level, o.flags...); err != nil {
			return err
		}

		logger.ForComponent(ctx, cmdLoggerName).Debug("message dispatched", "level", o.level.String(), "lines", log.Lines())
		return nil
	})
}

func (o *logOptions) loggerOptions() []superlog.Option {
	return []superlog.Option{
		superlog.WithOutput(o.out),
		superlog.WithErrorOutput(o.errOut),
		superlog.WithExit(o.exit),
	}
}

// writeOptions holds the options set for the current write invocation.
type writeOptions struct {
	configPath string
	line       string

	out io.Writer
}

func (o *writeOptions) validate() error {
	if o.line == "" {
		return errNoMessage
	}
	return nil
}

// execute appends the line to the file resource of the configured logger.
func (o *writeOptions) execute(ctx context.Context) error {
	opts := []superlog.Option{superlog.WithOutput(o.out)}
	return withLogger(ctx, o.configPath, opts, func(log *superlog.Logger) error {
		return log.Write(o.line + "\n")
	})
}

// withLogger runs fn with a logger built from the configuration at path. The
// logger is always closed and its close error joined to the result of fn.
func withLogger(ctx context.Context, path string, opts []superlog.Option, fn func(*superlog.Logger) error) error {
	cfg, err := loadConfig(ctx, path)
	if err != nil {
		return err
	}

	return runLogger(ctx, *cfg, opts, fn)
}

func runLogger(ctx context.Context, cfg config.Config, opts []superlog.Option, fn func(*superlog.Logger) error) (err error) {
	log, err := superlog.New(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, log.Close())
	}()

	return fn(log)
}
