// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package record

import (
	"fmt"
)

// Renderer turns a raw payload or call stack into printable text.
type Renderer interface {
	Render(v any) string
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(v any) string

func (f RenderFunc) Render(v any) string {
	return f(v)
}

// Plain is the default textual dump.
type Plain struct{}

var _ Renderer = Plain{}

func (Plain) Render(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprintf("%+v", value)
	}
}
