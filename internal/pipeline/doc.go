// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline converts and validates raw tokens into handler arguments.
//
// Binding runs in a fixed order: sender injection, conversion of the fixed
// parameters, validation of the fixed parameters, then conversion and validation
// of each variadic token into one typed slice. Every step reports a classified
// *failure.Error instead of panicking, so the dispatcher can move on to the next
// overload.
package pipeline
