// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package inspect provides the pretty object inspector used by the echo sink
// to dump payloads and call stacks.
package inspect
