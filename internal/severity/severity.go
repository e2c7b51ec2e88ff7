// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package severity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidLevel reports a severity outside the Debug..Emergency range.
	ErrInvalidLevel = errors.New("invalid severity level")
)

// Level is the rank of a log message, from Debug(0) to Emergency(7).
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
	Alert
	Critical
	Emergency
)

var labels = [...]string{
	Debug:     "Debug",
	Info:      "Info",
	Notice:    "Notice",
	Warning:   "Warning",
	Error:     "Error",
	Alert:     "Alert",
	Critical:  "Critical",
	Emergency: "Emergency",
}

// All returns every level in rank order.
func All() []Level {
	return []Level{Debug, Info, Notice, Warning, Error, Alert, Critical, Emergency}
}

// Valid reports whether l is one of the enumerated levels.
func (l Level) Valid() bool {
	return l >= Debug && l <= Emergency
}

func (l Level) String() string {
	if !l.Valid() {
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
	return labels[l]
}

// Label returns the display label of l, failing for out-of-range values.
func (l Level) Label() (string, error) {
	if !l.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
	}
	return labels[l], nil
}

// UnmarshalText accepts the same forms as Parse.
func (l *Level) UnmarshalText(text []byte) error {
	level, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// MarshalText renders the lowercase level name.
func (l Level) MarshalText() ([]byte, error) {
	label, err := l.Label()
	if err != nil {
		return nil, err
	}
	return []byte(strings.ToLower(label)), nil
}

// Parse converts a level name, alias or numeric rank into a Level.
// Names are matched case-insensitively.
func Parse(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "notice":
		return Notice, nil
	case "warning", "warn":
		return Warning, nil
	case "error", "err":
		return Error, nil
	case "alert":
		return Alert, nil
	case "critical", "crit":
		return Critical, nil
	case "emergency", "emerg":
		return Emergency, nil
	}

	rank, err := strconv.Atoi(s)
	if err != nil || !Level(rank).Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return Level(rank), nil
}
