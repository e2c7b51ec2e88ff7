// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package syslog

import (
	"fmt"
	"strings"

	"github.com/ameshkin/superlogger/internal/record"
	"github.com/ameshkin/superlogger/internal/severity"
	"github.com/ameshkin/superlogger/internal/sink"
)

// Priority is a syslog severity as defined by RFC 5424.
type Priority int

const (
	PriEmerg Priority = iota
	PriAlert
	PriCrit
	PriErr
	PriWarning
	PriNotice
	PriInfo
	PriDebug
)

var priorities = map[severity.Level]Priority{
	severity.Emergency: PriEmerg,
	severity.Alert:     PriAlert,
	severity.Critical:  PriCrit,
	severity.Error:     PriErr,
	severity.Warning:   PriWarning,
	severity.Notice:    PriNotice,
	severity.Info:      PriInfo,
	severity.Debug:     PriDebug,
}

// PriorityOf returns the syslog priority of level. Unknown levels map to PriDebug.
func PriorityOf(level severity.Level) Priority {
	if priority, found := priorities[level]; found {
		return priority
	}
	return PriDebug
}

// Backend is a system log facility.
type Backend interface {
	// Send delivers a single entry at the given priority.
	Send(priority Priority, message string) error
	Close() error
}

var _ sink.Sink = &syslogSink{}

type syslogSink struct {
	backend  Backend
	renderer record.Renderer
}

// New returns a sink sending every record block as a separate entry of backend.
func New(backend Backend) sink.Sink {
	return &syslogSink{
		backend:  backend,
		renderer: record.Plain{},
	}
}

func (s *syslogSink) Emit(rec *record.Record) error {
	priority := PriorityOf(rec.Level)

	blocks := []string{rec.Text, rec.PayloadBlock(s.renderer), rec.StackBlock(s.renderer)}
	for _, block := range blocks {
		message := strings.TrimSuffix(block, rec.Terminator)
		if message == "" {
			continue
		}
		if err := s.backend.Send(priority, message); err != nil {
			return fmt.Errorf("%w: %s", sink.ErrWrite, err)
		}
	}
	return nil
}

func (s *syslogSink) Close() error {
	return s.backend.Close()
}
