// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package inspect

import (
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/ameshkin/superlogger/internal/record"
)

var _ record.Renderer = &Inspector{}

// Inspector renders values as a typed, indented dump of their whole structure.
type Inspector struct {
	state *spew.ConfigState
}

// Option customizes an Inspector.
type Option func(*spew.ConfigState)

// WithMaxDepth limits how deep nested values are walked; zero means no limit.
func WithMaxDepth(depth int) Option {
	return func(cs *spew.ConfigState) {
		cs.MaxDepth = depth
	}
}

// WithPointerAddresses toggles printing of pointer addresses.
func WithPointerAddresses(enabled bool) Option {
	return func(cs *spew.ConfigState) {
		cs.DisablePointerAddresses = !enabled
	}
}

// New returns an Inspector with sorted map keys and no pointer addresses,
// so the same value always renders the same text.
func New(opts ...Option) *Inspector {
	state := &spew.ConfigState{
		Indent:                  "  ",
		SortKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	for _, opt := range opts {
		opt(state)
	}
	return &Inspector{state: state}
}

// Render implements record.Renderer.
func (i *Inspector) Render(v any) string {
	return strings.TrimSuffix(i.state.Sdump(v), "\n")
}
