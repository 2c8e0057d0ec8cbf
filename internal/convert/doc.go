// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package convert provides the built-in default converters.
//
// RegisterDefaults installs converters for int, int64, uint, float64, bool,
// time.Duration and uuid.UUID, plus the named "lower" converter for strings.
// Plain string parameters need no converter; their tokens pass through as typed.
package convert
