// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package definition holds the immutable command tree that the dispatcher routes into.
package definition

import (
	"strings"
	"time"
)

// Target is anything a permission predicate can be asked about: a Node or a Variant.
type Target interface {
	Permission() string
	Description() string
}

// =============================================================================
// COOLDOWN
// =============================================================================

// Cooldown is the cooldown declared on a command. A negative Duration means the command
// can be used once and then never again by the same sender.
type Cooldown struct {
	Duration time.Duration
}

// Forever reports whether the cooldown never expires.
func (c Cooldown) Forever() bool { return c.Duration < 0 }

// =============================================================================
// GUARD
// =============================================================================

// Guard is a precondition evaluated after permission checks. Guards with a higher
// Priority run first.
type Guard struct {
	Name     string
	Priority int
	Check    func(sender any) bool
}

// =============================================================================
// VARIANT
// =============================================================================

// Variant is one concrete overload of a default or named subcommand.
type Variant struct {
	description string
	syntax      string
	permission  string
	priority    int
	params      []*Parameter
	handler     Handler
	senderIndex int
	node        *Node
	group       *Group
}

// Description returns the variant description.
func (v *Variant) Description() string { return v.description }

// Syntax returns the declared syntax hint, empty when none was given.
func (v *Variant) Syntax() string { return v.syntax }

// Permission returns the permission node required for this variant.
func (v *Variant) Permission() string { return v.permission }

// Priority returns the declared priority.
func (v *Variant) Priority() int { return v.priority }

// Handler returns the bound handler.
func (v *Variant) Handler() Handler { return v.handler }

// Node returns the command that owns the variant.
func (v *Variant) Node() *Node { return v.node }

// Group returns the named group of the variant, nil for default variants.
func (v *Variant) Group() *Group { return v.group }

// Params returns the declared parameters including the sender parameter.
func (v *Variant) Params() []*Parameter {
	return append([]*Parameter(nil), v.params...)
}

// ArgParams returns the parameters that consume tokens, in order.
func (v *Variant) ArgParams() []*Parameter {
	out := make([]*Parameter, 0, len(v.params))
	for _, p := range v.params {
		if !p.IsSender() {
			out = append(out, p)
		}
	}
	return out
}

// HasSender reports whether the variant declares a sender parameter.
func (v *Variant) HasSender() bool { return v.senderIndex >= 0 }

// SenderIndex returns the position of the sender parameter, or -1.
func (v *Variant) SenderIndex() int { return v.senderIndex }

// HasVariadic reports whether the last parameter is a variadic tail.
func (v *Variant) HasVariadic() bool {
	return len(v.params) > 0 && v.params[len(v.params)-1].IsVariadic()
}

// Tail returns the variadic tail parameter, or nil.
func (v *Variant) Tail() *Parameter {
	if !v.HasVariadic() {
		return nil
	}
	return v.params[len(v.params)-1]
}

// FixedArity is the number of tokens consumed by non-sender, non-variadic parameters.
func (v *Variant) FixedArity() int {
	n := len(v.params)
	if v.HasSender() {
		n--
	}
	if v.HasVariadic() {
		n--
	}
	return n
}

// RequiredArgs is the minimum token count the variant accepts.
func (v *Variant) RequiredArgs() int {
	if tail := v.Tail(); tail != nil {
		m, _ := tail.Variadic()
		return v.FixedArity() + m.Min
	}
	return v.FixedArity()
}

// Accepts reports whether n remaining tokens are arity-compatible with the variant.
func (v *Variant) Accepts(n int) bool {
	if v.HasVariadic() {
		return n >= v.RequiredArgs()
	}
	return n == v.FixedArity()
}

// =============================================================================
// GROUP
// =============================================================================

// Group is a named subcommand: an alias list and the overloads that share it.
type Group struct {
	aliases  []string
	variants []*Variant
}

// Aliases returns the group aliases, primary first.
func (g *Group) Aliases() []string { return append([]string(nil), g.aliases...) }

// Name returns the primary alias.
func (g *Group) Name() string { return g.aliases[0] }

// Variants returns the overloads in trial order.
func (g *Group) Variants() []*Variant { return append([]*Variant(nil), g.variants...) }

// =============================================================================
// NODE
// =============================================================================

// Node is a routable command. Nodes are immutable once built.
type Node struct {
	aliases     []string
	description string
	permission  string
	cooldown    *Cooldown
	owner       any
	defaults    []*Variant
	groups      []*Group
	groupIndex  map[string]*Group
	guards      []Guard
	children    []*Node
	childIndex  map[string]*Node
	parent      *Node
}

// Aliases returns the command aliases, primary first.
func (n *Node) Aliases() []string { return append([]string(nil), n.aliases...) }

// Name returns the primary alias.
func (n *Node) Name() string { return n.aliases[0] }

// Path returns the primary aliases from the root command down to n, space separated.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.Name()
	}
	return n.parent.Path() + " " + n.Name()
}

// Description returns the command description.
func (n *Node) Description() string { return n.description }

// Permission returns the permission node required for the command.
func (n *Node) Permission() string { return n.permission }

// Cooldown returns the declared cooldown, if any.
func (n *Node) Cooldown() (Cooldown, bool) {
	if n.cooldown == nil {
		return Cooldown{}, false
	}
	return *n.cooldown, true
}

// Owner returns the opaque handler-owner reference.
func (n *Node) Owner() any { return n.owner }

// Parent returns the enclosing command, nil for top-level commands.
func (n *Node) Parent() *Node { return n.parent }

// Defaults returns the variants matched when no subcommand alias is consumed.
func (n *Node) Defaults() []*Variant { return append([]*Variant(nil), n.defaults...) }

// Groups returns the named subcommands in declaration order.
func (n *Node) Groups() []*Group { return append([]*Group(nil), n.groups...) }

// Group looks up a named subcommand by alias, ignoring case.
func (n *Node) Group(alias string) (*Group, bool) {
	g, ok := n.groupIndex[strings.ToLower(alias)]
	return g, ok
}

// Guards returns the precondition guards in evaluation order.
func (n *Node) Guards() []Guard { return append([]Guard(nil), n.guards...) }

// Children returns nested commands in registration order.
func (n *Node) Children() []*Node { return append([]*Node(nil), n.children...) }

// Child looks up a nested command by alias, ignoring case.
func (n *Node) Child(alias string) (*Node, bool) {
	c, ok := n.childIndex[strings.ToLower(alias)]
	return c, ok
}

// Variants returns every variant of the node, defaults first.
func (n *Node) Variants() []*Variant {
	out := append([]*Variant(nil), n.defaults...)
	for _, g := range n.groups {
		out = append(out, g.variants...)
	}
	return out
}

// Walk calls fn for n and every descendant, depth first, in registration order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}
