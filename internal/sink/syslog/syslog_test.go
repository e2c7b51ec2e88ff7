// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package syslog

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameshkin/superlogger/internal/config"
	"github.com/ameshkin/superlogger/internal/record"
	"github.com/ameshkin/superlogger/internal/severity"
	"github.com/ameshkin/superlogger/internal/sink"
)

type entry struct {
	priority Priority
	message  string
}

type fakeBackend struct {
	entries []entry
	err     error
	closed  bool
}

func (b *fakeBackend) Send(priority Priority, message string) error {
	if b.err != nil {
		return b.err
	}
	b.entries = append(b.entries, entry{priority: priority, message: message})
	return nil
}

func (b *fakeBackend) Close() error {
	b.closed = true
	return nil
}

func formatRecord(t *testing.T, payload record.Payload, level severity.Level) *record.Record {
	t.Helper()

	clock := func() time.Time { return time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC) }
	rec, err := record.NewFormatter(config.Default(), record.WithClock(clock)).Format(payload, level)
	require.NoError(t, err)
	return rec
}

func TestPriorityOf(t *testing.T) {
	t.Parallel()

	expected := map[severity.Level]Priority{
		severity.Emergency: 0,
		severity.Alert:     1,
		severity.Critical:  2,
		severity.Error:     3,
		severity.Warning:   4,
		severity.Notice:    5,
		severity.Info:      6,
		severity.Debug:     7,
	}
	for level, priority := range expected {
		assert.Equal(t, priority, PriorityOf(level), level.String())
	}
	assert.Equal(t, PriDebug, PriorityOf(severity.Level(42)))
}

func TestEmit(t *testing.T) {
	t.Parallel()

	t.Run("scalar record is a single entry", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{}
		syslogSink := New(backend)
		require.NoError(t, syslogSink.Emit(formatRecord(t, record.Scalar("disk full"), severity.Critical)))

		assert.Equal(t, []entry{
			{priority: PriCrit, message: "[2024-05-01 10:00:00.000000] [Critical] disk full"},
		}, backend.entries)

		require.NoError(t, syslogSink.Close())
		assert.True(t, backend.closed)
	})

	t.Run("raw payload is sent as an additional entry", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{}
		payload := record.Structured{Value: []string{"a", "b"}}
		require.NoError(t, New(backend).Emit(formatRecord(t, payload, severity.Notice)))

		assert.Equal(t, []entry{
			{priority: PriNotice, message: "[2024-05-01 10:00:00.000000] [Notice]"},
			{priority: PriNotice, message: "[a b]"},
		}, backend.entries)
	})

	t.Run("backend errors are write errors", func(t *testing.T) {
		t.Parallel()

		backend := &fakeBackend{err: errors.New("socket closed")}
		err := New(backend).Emit(formatRecord(t, record.Scalar("lost"), severity.Info))
		assert.ErrorIs(t, err, sink.ErrWrite)
		assert.ErrorContains(t, err, "socket closed")
	})
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	backend, err := NewBackend(BackendStderr, "tester", buffer)
	require.NoError(t, err)
	require.NoError(t, backend.Send(PriInfo, "hello"))
	require.NoError(t, backend.Close())
	assert.Equal(t, "tester: hello\n", buffer.String())

	_, err = NewBackend("carrier-pigeon", "tester", buffer)
	assert.ErrorIs(t, err, ErrUnknownBackend)

	backend, err = NewBackend(BackendAuto, "tester", buffer)
	require.NoError(t, err)
	assert.NotNil(t, backend)
	require.NoError(t, backend.Close())
}
