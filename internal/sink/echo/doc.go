// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package echo implements a sink that writes records to the default output
// stream of the process, or to any other io.Writer.
package echo
