// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gate holds the permission and precondition checks applied before a handler runs.
package gate

import (
	"github.com/jeranaias/slashkit/internal/definition"
)

// =============================================================================
// PERMISSIONS
// =============================================================================

// Permission decides whether sender may use target, a *definition.Node or a
// *definition.Variant.
type Permission interface {
	Allowed(sender any, target definition.Target) bool
}

// PermissionFunc adapts a function to Permission.
type PermissionFunc func(sender any, target definition.Target) bool

// Allowed implements Permission.
func (f PermissionFunc) Allowed(sender any, target definition.Target) bool {
	return f(sender, target)
}

// AllowAll permits everything.
var AllowAll Permission = PermissionFunc(func(any, definition.Target) bool { return true })

// Permitter is implemented by senders that carry permission nodes.
type Permitter interface {
	HasPermission(node string) bool
}

// NodePermissions checks the permission string declared on the target. An empty
// permission is always allowed; otherwise the sender must implement Permitter and
// hold the node.
func NodePermissions() Permission {
	return PermissionFunc(func(sender any, target definition.Target) bool {
		perm := target.Permission()
		if perm == "" {
			return true
		}
		p, ok := sender.(Permitter)
		return ok && p.HasPermission(perm)
	})
}

// Check runs the predicate for the command and then for the variant. It returns the
// target that was denied, or nil.
func Check(p Permission, sender any, node *definition.Node, variant *definition.Variant) definition.Target {
	if !p.Allowed(sender, node) {
		return node
	}
	if variant != nil && !p.Allowed(sender, variant) {
		return variant
	}
	return nil
}

// Probe asks p without letting a panicking predicate escape; a panic counts as denial.
func Probe(p Permission, sender any, target definition.Target) (allowed bool) {
	defer func() {
		if recover() != nil {
			allowed = false
		}
	}()
	return p.Allowed(sender, target)
}

// =============================================================================
// GUARDS
// =============================================================================

// RunGuards evaluates the node's guards in priority order and returns the first one
// that fails.
func RunGuards(node *definition.Node, sender any) (definition.Guard, bool) {
	for _, g := range node.Guards() {
		if !g.Check(sender) {
			return g, false
		}
	}
	return definition.Guard{}, true
}
