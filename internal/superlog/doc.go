// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package superlog provides the leveled Logger. A Logger is built from an
// explicit configuration, owns its sink, and must be closed when done:
//
//	log, err := superlog.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer log.Close()
//
//	log.Info("boot ok", superlog.Important)
//
// Calls that are not important are emitted only in debug mode.
package superlog
