// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package record formats a log call into a Record: timestamp, severity label,
// message body, optional serialized payload and optional call stack, each block
// closed by the terminator of the output medium.
package record
