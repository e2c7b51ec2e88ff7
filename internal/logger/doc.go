// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger provides the diagnostic logger of the library and the CLI.
// Diagnostics describe what the logger itself is doing and are never written
// to the configured log sink. Loggers travel through context.Context.
package logger
