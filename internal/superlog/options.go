// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package superlog

import (
	"io"
	"os"
	"time"

	"github.com/ameshkin/superlogger/internal/record"
	"github.com/ameshkin/superlogger/internal/sink/syslog"
)

// Option customizes a Logger at construction.
type Option func(*options)

type options struct {
	output    io.Writer
	stderr    io.Writer
	inspector record.Renderer
	backend   syslog.Backend
	clock     func() time.Time
	exit      func(int)
}

func defaultOptions() *options {
	return &options{
		output: os.Stdout,
		stderr: os.Stderr,
		clock:  time.Now,
		exit:   os.Exit,
	}
}

// WithOutput sets the stream used by the echo sink, os.Stdout by default.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithErrorOutput sets the stream used by the stderr system log fallback.
func WithErrorOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.stderr = w
		}
	}
}

// WithInspector sets the renderer the echo sink uses for payloads and call
// stacks. It replaces the inspector enabled through the configuration.
func WithInspector(renderer record.Renderer) Option {
	return func(o *options) {
		o.inspector = renderer
	}
}

// WithSyslogBackend bypasses the backend selection of the system log sink.
func WithSyslogBackend(backend syslog.Backend) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// WithClock replaces the time source used for timestamps and file names.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithExit replaces the function called to end the process after a
// terminating log call.
func WithExit(exit func(int)) Option {
	return func(o *options) {
		if exit != nil {
			o.exit = exit
		}
	}
}
