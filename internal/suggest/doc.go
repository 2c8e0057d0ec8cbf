// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest builds autocomplete suggestions for partially typed input.
//
// The engine walks the command tree like the resolver but tolerates incomplete
// input: an unknown first token yields matching command aliases, arity is not
// checked, and permission checks are probes that exclude instead of failing.
// The active parameter is the number of complete argument tokens; a trailing
// space starts a new token. Without a trailing space, results are limited to
// case-insensitive prefix matches of the partial token, never the token itself.
//
// # Key Types
//
//   - Engine: Suggest returns plain values, Complete returns ranked Completions
//   - Completion: value, display text, description and score
package suggest
