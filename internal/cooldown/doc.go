// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cooldown tracks per-sender command cooldowns.
//
// There is no background timer. A Store keeps one expiry per (sender, command) and
// GetOrSet treats an expired entry as absent, starting a new window in the same call.
//
// # Key Types
//
//   - Handler: the contract the dispatcher calls once per passed guard check
//   - Tracker: the default Handler over a Store
//   - MemoryStore, SQLiteStore: Store implementations
//   - Limiter: token-bucket Handler that allows a burst before the cooldown applies
//
// # Usage
//
//	tracker := cooldown.NewTracker(cooldown.NewMemoryStore())
//	d := dispatch.New(reg, dispatch.WithCooldown(tracker))
package cooldown
