// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package record

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameshkin/superlogger/internal/config"
	"github.com/ameshkin/superlogger/internal/severity"
)

var fixedTime = time.Date(2024, time.June, 1, 10, 30, 15, 123456789, time.UTC)

func fixedClock() time.Time { return fixedTime }

func TestFormatLabels(t *testing.T) {
	t.Parallel()

	formatter := NewFormatter(config.Default(), WithClock(fixedClock))
	expected := []string{"Debug", "Info", "Notice", "Warning", "Error", "Alert", "Critical", "Emergency"}
	for rank, label := range expected {
		record, err := formatter.Format(Scalar("message"), severity.Level(rank))
		require.NoError(t, err)
		assert.Equal(t, label, record.Label)
		assert.Equal(t, "[2024-06-01 10:30:15.123456] ["+label+"] message\n", record.Text)
	}

	for _, level := range []severity.Level{-1, 8} {
		record, err := formatter.Format(Scalar("message"), level)
		assert.ErrorIs(t, err, severity.ErrInvalidLevel)
		assert.Nil(t, record)
	}
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LineDateFormat = "15:04:05"
	formatter := NewFormatter(cfg, WithClock(fixedClock))

	record, err := formatter.Format(Scalar("boot ok"), severity.Info)
	require.NoError(t, err)
	assert.Equal(t, "10:30:15", record.Timestamp)
	assert.Equal(t, fixedTime.Truncate(time.Microsecond), record.Time)
	assert.Regexp(t, regexp.MustCompile(`^\[.*\] \[Info\] boot ok\n$`), record.Text)
}

func TestFormatStructuredPayload(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"user": "jane", "roles": []string{"admin"}}

	t.Run("plain mode carries the raw payload", func(t *testing.T) {
		t.Parallel()

		formatter := NewFormatter(config.Default(), WithClock(fixedClock))
		record, err := formatter.Format(Structured{Value: payload}, severity.Notice)
		require.NoError(t, err)
		assert.Equal(t, "[2024-06-01 10:30:15.123456] [Notice]\n", record.Text)
		assert.Equal(t, payload, record.Payload)
		assert.Empty(t, record.Serialized)
		assert.Equal(t, "map[roles:[admin] user:jane]\n", record.PayloadBlock(Plain{}))
	})

	t.Run("json mode serializes after the header", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		cfg.PayloadFormat = config.FormatJSON
		formatter := NewFormatter(cfg, WithClock(fixedClock))
		record, err := formatter.Format(Structured{Value: payload}, severity.Notice)
		require.NoError(t, err)

		expected := `[2024-06-01 10:30:15.123456] [Notice]
{
    "roles": [
        "admin"
    ],
    "user": "jane"
}
`
		assert.Equal(t, expected, record.Text)
		assert.Nil(t, record.Payload)
		assert.Empty(t, record.PayloadBlock(Plain{}))
	})

	t.Run("yaml mode serializes after the header", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		cfg.PayloadFormat = config.FormatYAML
		formatter := NewFormatter(cfg, WithClock(fixedClock))
		record, err := formatter.Format(Structured{Value: payload}, severity.Warning)
		require.NoError(t, err)

		expected := `[2024-06-01 10:30:15.123456] [Warning]
roles:
  - admin
user: jane
`
		assert.Equal(t, expected, record.Text)
	})

	t.Run("unserializable values fall back to the plain dump", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		cfg.PayloadFormat = config.FormatJSON
		formatter := NewFormatter(cfg, WithClock(fixedClock))
		record, err := formatter.Format(Structured{Value: map[string]any{"fn": func() {}}}, severity.Error)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(record.Serialized, "map[fn:"))
	})

	t.Run("custom serializer", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		cfg.PayloadFormat = config.FormatJSON
		formatter := NewFormatter(cfg, WithClock(fixedClock), WithSerializer(failingSerializer{}))
		record, err := formatter.Format(Structured{Value: []int{1, 2}}, severity.Error)
		require.NoError(t, err)
		assert.Equal(t, "[1 2]", record.Serialized)
	})
}

func TestFormatTerminator(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LineBreak = config.LineBreakHTML
	cfg.PayloadFormat = config.FormatJSON
	formatter := NewFormatter(cfg, WithClock(fixedClock))

	record, err := formatter.Format(Scalar("hello"), severity.Info)
	require.NoError(t, err)
	assert.Equal(t, TerminatorHTML, record.Terminator)
	assert.Equal(t, "[2024-06-01 10:30:15.123456] [Info] hello<br>\n", record.Text)

	record, err = formatter.Format(Structured{Value: []int{1}}, severity.Info)
	require.NoError(t, err)
	assert.Equal(t, "[2024-06-01 10:30:15.123456] [Info]<br>\n[\n    1\n]<br>\n", record.Text)
}

func TestFormatStack(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		backtrace     bool
		debug         bool
		levels        []severity.Level
		level         severity.Level
		expectedStack bool
	}{
		"disabled": {
			debug: true,
			level: severity.Error,
		},
		"enabled without debug": {
			backtrace: true,
			level:     severity.Error,
		},
		"enabled with debug": {
			backtrace:     true,
			debug:         true,
			level:         severity.Error,
			expectedStack: true,
		},
		"level in trigger set": {
			backtrace:     true,
			debug:         true,
			levels:        []severity.Level{severity.Critical, severity.Error},
			level:         severity.Error,
			expectedStack: true,
		},
		"level outside trigger set": {
			backtrace: true,
			debug:     true,
			levels:    []severity.Level{severity.Critical},
			level:     severity.Info,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			cfg.Backtrace = test.backtrace
			cfg.Debug = test.debug
			cfg.BacktraceLevels = test.levels
			formatter := NewFormatter(cfg, WithClock(fixedClock))

			record, err := formatter.Format(Scalar("trace me"), test.level)
			require.NoError(t, err)
			if !test.expectedStack {
				assert.Empty(t, record.Stack)
				assert.Empty(t, record.StackBlock(Plain{}))
				return
			}

			require.NotEmpty(t, record.Stack)
			assert.Contains(t, record.Stack[0].Function, "TestFormatStack")
			assert.Empty(t, record.StackText)
			assert.Contains(t, record.StackBlock(Plain{}), "format_test.go:")
		})
	}
}

func TestFormatStackDepthAndSerialization(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Backtrace = true
	cfg.Debug = true
	cfg.BacktraceDepth = 1
	cfg.PayloadFormat = config.FormatJSON
	formatter := NewFormatter(cfg, WithClock(fixedClock))

	record, err := formatter.Format(Scalar("trace me"), severity.Alert)
	require.NoError(t, err)
	require.Len(t, record.Stack, 1)
	assert.Contains(t, record.StackText, `"function": `)
	assert.Contains(t, record.StackText, "TestFormatStackDepthAndSerialization")
	assert.True(t, strings.HasSuffix(record.StackBlock(Plain{}), "}\n]\n"))
}

func TestFormatSkip(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Backtrace = true
	cfg.Debug = true
	formatter := NewFormatter(cfg, WithClock(fixedClock))

	wrapper := func() *Record {
		record, err := formatter.FormatSkip(1, Scalar("wrapped"), severity.Debug)
		require.NoError(t, err)
		return record
	}

	record := wrapper()
	require.NotEmpty(t, record.Stack)
	assert.NotContains(t, record.Stack[0].Function, "func")
	assert.Contains(t, record.Stack[0].Function, "TestFormatSkip")
}

type failingSerializer struct{}

func (failingSerializer) Serialize(any) (string, error) {
	return "", errors.New("cannot serialize")
}
