// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry owns the type processors and the set of registered commands.
//
// # Key Types
//
//   - Types: converters by declared type or name, validators by marker type,
//     suggestion sources by declared type or name
//   - Registry: top-level commands, published as immutable snapshots
//
// Converters and sources must be registered before the commands that use them:
// Register checks every parameter of the subtree and rejects the command when an
// explicit converter is missing or produces a different type than declared.
//
// # Usage
//
//	types := registry.NewTypes()
//	convert.RegisterDefaults(types)
//	reg := registry.New(types)
//	if err := reg.Register(giveNode); err != nil {
//	    return err
//	}
package registry
