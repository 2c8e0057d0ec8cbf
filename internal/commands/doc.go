// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the built-in demo command set used by the shell.
//
// The commands act on a small in-memory World of players. Players are senders: they
// carry permission nodes, a cooldown key and an inventory. Console is the operator
// sender and holds every permission.
//
// # Commands
//
//   - give, g: give items, with an item subcommand that takes an amount
//   - heal: heal yourself, another player, or everyone (10s cooldown)
//   - teleport, tp: move to coordinates or players; tp spawn returns to spawn
//   - freeze: toggle a player's frozen state, which blocks teleporting
//   - kit, kits: claim one kit per player, list kits
//   - inventory, inv: show inventories
//   - say, who, help
//
// # Usage
//
//	types := registry.NewTypes()
//	convert.RegisterDefaults(types)
//	validate.RegisterDefaults(types)
//	reg := registry.New(types)
//	err := commands.Register(commands.Env{World: commands.NewWorld(), Registry: reg})
package commands
