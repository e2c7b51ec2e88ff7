// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

//go:build !windows && !plan9

package syslog

import (
	"fmt"
	gosyslog "log/syslog"
)

type daemonBackend struct {
	writer *gosyslog.Writer
}

func dialSyslog(tag string) (Backend, error) {
	writer, err := gosyslog.New(gosyslog.LOG_USER|gosyslog.LOG_INFO, tag)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	return &daemonBackend{writer: writer}, nil
}

func (b *daemonBackend) Send(priority Priority, message string) error {
	switch priority {
	case PriEmerg:
		return b.writer.Emerg(message)
	case PriAlert:
		return b.writer.Alert(message)
	case PriCrit:
		return b.writer.Crit(message)
	case PriErr:
		return b.writer.Err(message)
	case PriWarning:
		return b.writer.Warning(message)
	case PriNotice:
		return b.writer.Notice(message)
	case PriInfo:
		return b.writer.Info(message)
	default:
		return b.writer.Debug(message)
	}
}

func (b *daemonBackend) Close() error {
	return b.writer.Close()
}
