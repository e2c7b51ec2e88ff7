// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package severity defines the eight ranked log levels, from Debug to Emergency,
// and their display labels.
package severity
