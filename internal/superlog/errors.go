// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package superlog

import (
	"errors"

	"github.com/ameshkin/superlogger/internal/config"
	"github.com/ameshkin/superlogger/internal/severity"
	"github.com/ameshkin/superlogger/internal/sink"
	"github.com/ameshkin/superlogger/internal/sink/file"
)

var (
	ErrConfigNotValid = config.ErrConfigNotValid
	ErrPermission     = file.ErrPermission
	ErrResource       = file.ErrResource
	ErrWrite          = sink.ErrWrite
	ErrInvalidLevel   = severity.ErrInvalidLevel

	// ErrInvalidState reports a raw write on a logger that holds no file resource.
	ErrInvalidState = errors.New("logger holds no file resource")
)
