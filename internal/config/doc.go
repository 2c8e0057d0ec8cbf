// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for slashkit.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - CooldownConfig: Which cooldown store backs the dispatcher
//   - ValidateErrors: Every problem found by Validate
//   - Watcher: Reloads the file when it changes on disk
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (SLASHKIT_*)
//   - ~/.slashkit/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Follow edits:
//
//	w, err := config.NewWatcher(path, func(c *config.Config) {
//	    logger.SetLevel(c.Log.Level)
//	}, nil)
//	w.Start()
//	defer w.Close()
package config
