// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resolver turns raw input into tokens and walks the command tree.
//
// Parse strips the configured prefix and splits on whitespace. Resolve looks up the
// first token as a top-level command, greedily follows child aliases, consumes a
// named subcommand alias when one matches and otherwise falls back to the default
// variants, then filters the candidates by arity. Walk performs the same descent
// without the arity filter for suggestion building.
package resolver
