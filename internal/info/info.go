// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package info holds application version information.
package info

var (
	// AppName is the name of the application and the default system log tag.
	AppName = "superlogger"
	// Version is overridden at build time through -ldflags.
	Version = "DEV"
	// BuildDate is set at build time through -ldflags.
	BuildDate = "" // YYYY-MM-DD
)
