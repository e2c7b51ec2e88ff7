// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package echo

import (
	"fmt"
	"io"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/ameshkin/superlogger/internal/record"
	"github.com/ameshkin/superlogger/internal/sink"
)

var _ sink.Sink = &echoSink{}

type echoSink struct {
	writer   io.Writer
	renderer record.Renderer

	lock sync.Mutex
}

// New returns a sink writing records to w. The inspector renders payloads and
// call stacks only when w is not a terminal; the plain dump is used otherwise
// or when inspector is nil.
func New(w io.Writer, inspector record.Renderer) sink.Sink {
	var renderer record.Renderer = record.Plain{}
	if inspector != nil && !IsTerminal(w) {
		renderer = inspector
	}

	return &echoSink{
		writer:   w,
		renderer: renderer,
	}
}

func (s *echoSink) Emit(rec *record.Record) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	blocks := []string{rec.Text, rec.PayloadBlock(s.renderer), rec.StackBlock(s.renderer)}
	for _, block := range blocks {
		if block == "" {
			continue
		}
		if _, err := io.WriteString(s.writer, block); err != nil {
			return fmt.Errorf("%w: %s", sink.ErrWrite, err)
		}
	}
	return nil
}

// Close is a no-op: the output stream belongs to the caller.
func (s *echoSink) Close() error {
	return nil
}

// IsTerminal reports whether w is backed by an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
