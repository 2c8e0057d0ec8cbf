// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package definition holds the immutable command tree that the dispatcher routes into.
//
// A tree is built once through the Builder API and never mutated afterwards, so it can be
// shared by any number of concurrent dispatches without locking.
//
// # Key Types
//
//   - Node: a routable command with aliases, variants, guards and children
//   - Group: a named subcommand alias list and the overloads sharing it
//   - Variant: one concrete overload with its parameters and handler
//   - Parameter: a declared type plus metadata markers
//   - Marker: declarative tag selecting converter, source, sender injection or constraints
//
// # Usage
//
//	node, err := definition.NewCommand("give", "g").
//	    Description("Give an item to yourself").
//	    Subcommand([]string{"item"}, definition.NewVariant(
//	        definition.Func(giveItem),
//	        definition.SenderParam[*Player]("player"),
//	        definition.Param[int]("amount"),
//	    )).
//	    Build()
package definition
