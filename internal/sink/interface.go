// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package sink

import (
	"errors"

	"github.com/ameshkin/superlogger/internal/record"
)

var (
	// ErrWrite reports a failure while delivering a record to an open destination.
	ErrWrite = errors.New("log write failed")
)

// Sink delivers formatted records to their destination and owns any resource
// needed to do so.
type Sink interface {
	// Emit sends the header block, then the payload and call stack blocks when present.
	Emit(rec *record.Record) error
	// Close releases the sink resources, flushing buffered data first.
	Close() error
}

// Nop is the sink used when logging is switched off.
type Nop struct{}

var _ Sink = Nop{}

func (Nop) Emit(*record.Record) error { return nil }
func (Nop) Close() error              { return nil }
