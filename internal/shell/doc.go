// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell runs the demo command set behind a line editor.
//
// The shell registers the commands from package commands plus a few of its own
// (as, join, leave, config, quit), installs a failure handler for every failure kind
// and prints results with lipgloss styles.
//
// # Key Types
//
//   - Shell: one registry, dispatcher and cooldown store, plus the current sender
//   - Options: config, output writer, logger and the players to seed
//
// # Usage
//
//	sh, err := shell.New(shell.Options{Config: cfg})
//	if err != nil {
//		return err
//	}
//	defer sh.Close()
//	return sh.Run()
package shell
