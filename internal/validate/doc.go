// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate provides the built-in constraint markers and their validators.
//
// # Key Types
//
//   - Range: numeric bounds, inclusive by default, rendered as "[1, 64]"
//   - Length: rune count bounds for strings
//   - Pattern: full-string regular expression match
//   - OneOf: fixed set of allowed strings
//
// # Usage
//
//	validate.RegisterDefaults(types)
//	amount := definition.Param[int]("amount", validate.Between(1, 64))
package validate
