// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package syslog implements a sink that forwards records to the platform system
// log: journald, a local syslog daemon, or stderr when neither is reachable.
package syslog
