// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

//go:build windows || plan9

package syslog

import (
	"fmt"
	"runtime"
)

func dialSyslog(string) (Backend, error) {
	return nil, fmt.Errorf("%w: not supported on %s", ErrUnavailable, runtime.GOOS)
}
