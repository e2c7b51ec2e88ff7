// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package record

import (
	"strings"
	"time"

	"github.com/ameshkin/superlogger/internal/config"
	"github.com/ameshkin/superlogger/internal/severity"
)

const (
	// TerminatorText ends records written to terminals, pipes and files.
	TerminatorText = "\n"
	// TerminatorHTML ends records written to markup pages.
	TerminatorHTML = "<br>\n"
)

// Record is the transient, formatted form of a single log call.
type Record struct {
	Time      time.Time
	Level     severity.Level
	Timestamp string
	Label     string

	// Text is the header line followed, in structured mode, by the serialized payload.
	Text string
	// Payload holds the raw structured value when it was not serialized into Text.
	Payload any
	// Serialized holds the serialized payload already embedded in Text.
	Serialized string
	// Stack holds the raw captured call stack.
	Stack Stack
	// StackText holds the serialized call stack in structured mode.
	StackText string

	Terminator string
}

// PayloadBlock returns the printable representation of the raw payload, or an
// empty string when the record carries none.
func (r *Record) PayloadBlock(renderer Renderer) string {
	if r.Payload == nil {
		return ""
	}
	return terminate(renderer.Render(r.Payload), r.Terminator)
}

// StackBlock returns the printable representation of the call stack, or an
// empty string when none was captured.
func (r *Record) StackBlock(renderer Renderer) string {
	switch {
	case r.StackText != "":
		return terminate(r.StackText, r.Terminator)
	case len(r.Stack) > 0:
		return terminate(renderer.Render(r.Stack), r.Terminator)
	default:
		return ""
	}
}

// Option customizes a Formatter.
type Option func(*Formatter)

// WithClock replaces the time source of the formatter.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		if now != nil {
			f.now = now
		}
	}
}

// WithSerializer replaces the serializer chosen from the payload format.
func WithSerializer(serializer Serializer) Option {
	return func(f *Formatter) {
		f.serializer = serializer
	}
}

// Formatter turns payloads into records following the configured layouts.
type Formatter struct {
	layout     string
	serializer Serializer
	terminator string

	backtrace bool
	depth     int
	triggers  map[severity.Level]struct{}

	now func() time.Time
}

// NewFormatter builds a formatter from the configuration.
func NewFormatter(cfg config.Config, opts ...Option) *Formatter {
	f := &Formatter{
		layout:     cfg.LineDateFormat,
		serializer: NewSerializer(cfg.PayloadFormat),
		terminator: TerminatorText,
		backtrace:  cfg.Backtrace && cfg.Debug,
		depth:      cfg.BacktraceDepth,
		now:        time.Now,
	}

	if cfg.LineBreak == config.LineBreakHTML {
		f.terminator = TerminatorHTML
	}

	if len(cfg.BacktraceLevels) > 0 {
		f.triggers = make(map[severity.Level]struct{}, len(cfg.BacktraceLevels))
		for _, level := range cfg.BacktraceLevels {
			f.triggers[level] = struct{}{}
		}
	}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format renders payload at level. The only failure is an out-of-range level.
func (f *Formatter) Format(payload Payload, level severity.Level) (*Record, error) {
	return f.format(payload, level, 1)
}

// FormatSkip is Format for wrappers: the captured call stack starts skip
// frames above the caller of FormatSkip.
func (f *Formatter) FormatSkip(skip int, payload Payload, level severity.Level) (*Record, error) {
	return f.format(payload, level, skip+1)
}

func (f *Formatter) format(payload Payload, level severity.Level, skip int) (*Record, error) {
	label, err := level.Label()
	if err != nil {
		return nil, err
	}

	now := f.now().Truncate(time.Microsecond)
	record := &Record{
		Time:       now,
		Level:      level,
		Timestamp:  now.Format(f.layout),
		Label:      label,
		Terminator: f.terminator,
	}

	header := "[" + record.Timestamp + "] [" + label + "]"
	switch p := payload.(type) {
	case Structured:
		if f.serializer == nil {
			record.Payload = p.Value
			record.Text = header + f.terminator
			break
		}
		record.Serialized = f.serialize(p.Value)
		record.Text = header + f.terminator + terminate(record.Serialized, f.terminator)
	case Scalar:
		record.Text = header + " " + string(p) + f.terminator
	default:
		record.Text = header + " " + f.terminator
	}

	if f.captures(level) {
		record.Stack = captureStack(skip+1, f.depth)
		if f.serializer != nil && len(record.Stack) > 0 {
			record.StackText = f.serialize(record.Stack)
		}
	}

	return record, nil
}

func (f *Formatter) captures(level severity.Level) bool {
	if !f.backtrace {
		return false
	}
	if f.triggers == nil {
		return true
	}
	_, ok := f.triggers[level]
	return ok
}

// serialize never fails: values the serializer rejects fall back to the plain dump.
func (f *Formatter) serialize(v any) string {
	text, err := f.serializer.Serialize(v)
	if err != nil {
		return Plain{}.Render(v)
	}
	return text
}

func terminate(text, terminator string) string {
	return strings.TrimRight(text, "\n") + terminator
}
