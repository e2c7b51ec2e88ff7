// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package sink defines the contract shared by every log record destination.
// Implementations live in the echo, syslog and file subpackages.
package sink
