// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package syslog

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/coreos/go-systemd/v22/journal"
)

const (
	BackendAuto    = "auto"
	BackendJournal = "journal"
	BackendSyslog  = "syslog"
	BackendStderr  = "stderr"
)

var (
	// ErrUnavailable reports a system log facility that cannot be reached.
	ErrUnavailable = errors.New("system log not available")
	// ErrUnknownBackend reports an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown system log backend")
)

// NewBackend connects to the named facility. The auto backend tries journald,
// then the local syslog daemon, and finally falls back to writing on stderr.
func NewBackend(name, tag string, stderr io.Writer) (Backend, error) {
	switch name {
	case "", BackendAuto:
		if journal.Enabled() {
			return newJournalBackend(tag), nil
		}
		if backend, err := dialSyslog(tag); err == nil {
			return backend, nil
		}
		return NewStderrBackend(stderr, tag), nil
	case BackendJournal:
		if !journal.Enabled() {
			return nil, fmt.Errorf("%w: journald socket not found", ErrUnavailable)
		}
		return newJournalBackend(tag), nil
	case BackendSyslog:
		return dialSyslog(tag)
	case BackendStderr:
		return NewStderrBackend(stderr, tag), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

type journalBackend struct {
	vars map[string]string
}

func newJournalBackend(tag string) Backend {
	return &journalBackend{
		vars: map[string]string{"SYSLOG_IDENTIFIER": tag},
	}
}

func (b *journalBackend) Send(priority Priority, message string) error {
	return journal.Send(message, journal.Priority(priority), b.vars)
}

func (b *journalBackend) Close() error {
	return nil
}

type stderrBackend struct {
	writer io.Writer
	tag    string

	lock sync.Mutex
}

// NewStderrBackend returns the error-log fallback: entries are written to w
// prefixed by tag.
func NewStderrBackend(w io.Writer, tag string) Backend {
	return &stderrBackend{
		writer: w,
		tag:    tag,
	}
}

func (b *stderrBackend) Send(_ Priority, message string) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	_, err := fmt.Fprintf(b.writer, "%s: %s\n", b.tag, message)
	return err
}

func (b *stderrBackend) Close() error {
	return nil
}
