// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gate holds the permission and precondition checks applied before a handler runs.
//
// The permission predicate is supplied by the caller. NodePermissions is a ready-made
// predicate for senders that implement Permitter. Probe is the non-throwing form used
// while building suggestions.
package gate
