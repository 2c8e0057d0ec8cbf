// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by slashkit packages.
//
// # Key Functions
//
//   - StringWidth, TruncateWidth, PadRight: terminal-cell aware string sizing
//     for help listings
//   - AtomicWriteFile: crash-safe file writes for saved configuration
package util
