// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package record

import (
	"runtime"
	"strconv"
	"strings"
)

const defaultStackDepth = 32

// Frame is a single entry of a captured call stack.
type Frame struct {
	Function string `json:"function" yaml:"function"`
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`
}

func (f Frame) String() string {
	return f.Function + "\n\t" + f.File + ":" + strconv.Itoa(f.Line)
}

// Stack is a captured call stack, innermost frame first.
type Stack []Frame

func (s Stack) String() string {
	var b strings.Builder
	for i, frame := range s {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(frame.String())
	}
	return b.String()
}

// captureStack returns at most depth frames starting at the caller of captureStack,
// after skipping skip additional frames.
func captureStack(skip, depth int) Stack {
	if depth <= 0 {
		depth = defaultStackDepth
	}

	pcs := make([]uintptr, depth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	stack := make(Stack, 0, n)
	for {
		frame, more := frames.Next()
		if frame.File != "" {
			stack = append(stack, Frame{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			})
		}
		if !more || len(stack) >= depth {
			break
		}
	}
	return stack
}
