// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package file implements the custom log file sink. A file resource is
// acquired once when the logger is built and released when it is closed.
package file
