// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package definition holds the immutable command tree that the dispatcher routes into.
package definition

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// =============================================================================
// BUILD ERROR
// =============================================================================

// BuildError reports a structural problem found while building a command tree.
type BuildError struct {
	Command string
	Message string
}

func (e *BuildError) Error() string {
	if e.Command == "" {
		return "command definition: " + e.Message
	}
	return "command " + e.Command + ": " + e.Message
}

// =============================================================================
// VARIANT BUILDER
// =============================================================================

// VariantBuilder collects the declaration of one overload.
type VariantBuilder struct {
	description string
	syntax      string
	permission  string
	priority    int
	params      []*Parameter
	handler     Handler
}

// NewVariant starts a variant bound to handler with the given parameters.
func NewVariant(handler Handler, params ...*Parameter) *VariantBuilder {
	return &VariantBuilder{
		handler: handler,
		params:  append([]*Parameter(nil), params...),
	}
}

// Description sets the help text.
func (b *VariantBuilder) Description(desc string) *VariantBuilder {
	b.description = desc
	return b
}

// Syntax sets a usage hint shown instead of the generated one.
func (b *VariantBuilder) Syntax(syntax string) *VariantBuilder {
	b.syntax = syntax
	return b
}

// Permission sets the permission node the sender needs for this variant.
func (b *VariantBuilder) Permission(perm string) *VariantBuilder {
	b.permission = perm
	return b
}

// Priority moves the variant ahead of lower-priority overloads in trial order.
func (b *VariantBuilder) Priority(p int) *VariantBuilder {
	b.priority = p
	return b
}

func (b *VariantBuilder) build(command string) (*Variant, error) {
	if b.handler == nil {
		return nil, &BuildError{Command: command, Message: "variant has no handler"}
	}

	v := &Variant{
		description: b.description,
		syntax:      b.syntax,
		permission:  b.permission,
		priority:    b.priority,
		params:      append([]*Parameter(nil), b.params...),
		handler:     b.handler,
		senderIndex: -1,
	}

	for i, p := range v.params {
		if p == nil || p.typ == nil {
			return nil, &BuildError{Command: command, Message: fmt.Sprintf("parameter %d has no type", i)}
		}
		if p.IsSender() {
			if v.senderIndex >= 0 {
				return nil, &BuildError{Command: command, Message: "more than one sender parameter"}
			}
			if p.IsVariadic() {
				return nil, &BuildError{Command: command, Message: "sender parameter cannot be variadic"}
			}
			v.senderIndex = i
		}
		if p.IsVariadic() && i != len(v.params)-1 {
			return nil, &BuildError{Command: command, Message: fmt.Sprintf("variadic parameter %q must be last", p.Name())}
		}
		if m, ok := p.Variadic(); ok && m.Min < 0 {
			return nil, &BuildError{Command: command, Message: fmt.Sprintf("variadic parameter %q has negative minimum", p.Name())}
		}
	}

	if sh, ok := b.handler.(signatureHandler); ok {
		if err := checkSignature(sh.signature(), v.params); err != nil {
			return nil, &BuildError{Command: command, Message: err.Error()}
		}
	}

	return v, nil
}

// =============================================================================
// COMMAND BUILDER
// =============================================================================

type groupDecl struct {
	aliases  []string
	variants []*VariantBuilder
}

// Builder collects the declaration of one command node.
type Builder struct {
	aliases     []string
	description string
	permission  string
	cooldown    *Cooldown
	owner       any
	defaults    []*VariantBuilder
	groups      []*groupDecl
	guards      []Guard
	children    []*Builder
}

// NewCommand starts a command with the given aliases; the first is the primary name.
func NewCommand(aliases ...string) *Builder {
	return &Builder{aliases: aliases}
}

// Description sets the help text.
func (b *Builder) Description(desc string) *Builder {
	b.description = desc
	return b
}

// Permission sets the permission node the sender needs for the command.
func (b *Builder) Permission(perm string) *Builder {
	b.permission = perm
	return b
}

// Cooldown declares a per-sender cooldown. A negative duration never expires.
func (b *Builder) Cooldown(d time.Duration) *Builder {
	b.cooldown = &Cooldown{Duration: d}
	return b
}

// Owner attaches an opaque reference to the object that owns the handlers.
func (b *Builder) Owner(owner any) *Builder {
	b.owner = owner
	return b
}

// Guard adds a precondition guard.
func (b *Builder) Guard(name string, priority int, check func(sender any) bool) *Builder {
	b.guards = append(b.guards, Guard{Name: name, Priority: priority, Check: check})
	return b
}

// Default adds variants matched when no subcommand alias is typed.
func (b *Builder) Default(variants ...*VariantBuilder) *Builder {
	b.defaults = append(b.defaults, variants...)
	return b
}

// Subcommand adds variants under a named alias group. Declaring the same alias list
// twice appends overloads to the existing group.
func (b *Builder) Subcommand(aliases []string, variants ...*VariantBuilder) *Builder {
	for _, g := range b.groups {
		if sameAliases(g.aliases, aliases) {
			g.variants = append(g.variants, variants...)
			return b
		}
	}
	b.groups = append(b.groups, &groupDecl{aliases: aliases, variants: variants})
	return b
}

// Child nests another command reachable by typing its alias after this one.
func (b *Builder) Child(children ...*Builder) *Builder {
	b.children = append(b.children, children...)
	return b
}

// Build validates the declaration and returns the immutable node.
func (b *Builder) Build() (*Node, error) {
	return b.build(nil)
}

func (b *Builder) build(parent *Node) (*Node, error) {
	aliases := NormalizeAliases(b.aliases...)
	if len(aliases) == 0 {
		return nil, &BuildError{Message: "aliases are empty"}
	}
	name := aliases[0]
	if parent != nil {
		name = parent.Path() + " " + name
	}

	n := &Node{
		aliases:     aliases,
		description: b.description,
		permission:  b.permission,
		owner:       b.owner,
		groupIndex:  make(map[string]*Group),
		childIndex:  make(map[string]*Node),
		parent:      parent,
	}
	if b.cooldown != nil {
		cd := *b.cooldown
		n.cooldown = &cd
	}

	for _, g := range b.guards {
		if g.Check == nil {
			return nil, &BuildError{Command: name, Message: fmt.Sprintf("guard %q has no check", g.Name)}
		}
	}
	n.guards = append([]Guard(nil), b.guards...)
	sort.SliceStable(n.guards, func(i, j int) bool {
		return n.guards[i].Priority > n.guards[j].Priority
	})

	defaults, err := buildVariants(name, b.defaults, n, nil)
	if err != nil {
		return nil, err
	}
	n.defaults = defaults

	for _, decl := range b.groups {
		groupAliases := NormalizeAliases(decl.aliases...)
		if len(groupAliases) == 0 {
			return nil, &BuildError{Command: name, Message: "subcommand aliases are empty"}
		}
		g := &Group{aliases: groupAliases}
		for _, alias := range groupAliases {
			if _, dup := n.groupIndex[alias]; dup {
				return nil, &BuildError{Command: name, Message: fmt.Sprintf("subcommand alias %q declared twice", alias)}
			}
			if slices.Contains(n.aliases, alias) {
				return nil, &BuildError{Command: name, Message: fmt.Sprintf("subcommand alias %q conflicts with command alias", alias)}
			}
			n.groupIndex[alias] = g
		}
		variants, err := buildVariants(name, decl.variants, n, g)
		if err != nil {
			return nil, err
		}
		if len(variants) == 0 {
			return nil, &BuildError{Command: name, Message: fmt.Sprintf("subcommand %q has no variants", g.Name())}
		}
		g.variants = variants
		n.groups = append(n.groups, g)
	}

	if len(n.defaults) == 0 && len(n.groups) == 0 {
		return nil, &BuildError{Command: name, Message: "has no default or named subcommands"}
	}

	for _, cb := range b.children {
		child, err := cb.build(n)
		if err != nil {
			return nil, err
		}
		for _, alias := range child.aliases {
			if _, dup := n.childIndex[alias]; dup {
				return nil, &BuildError{Command: name, Message: fmt.Sprintf("child alias %q declared twice", alias)}
			}
			if _, clash := n.groupIndex[alias]; clash {
				return nil, &BuildError{Command: name, Message: fmt.Sprintf("child alias %q conflicts with subcommand alias", alias)}
			}
			n.childIndex[alias] = child
		}
		n.children = append(n.children, child)
	}

	return n, nil
}

func buildVariants(command string, decls []*VariantBuilder, n *Node, g *Group) ([]*Variant, error) {
	out := make([]*Variant, 0, len(decls))
	for _, d := range decls {
		if d == nil {
			return nil, &BuildError{Command: command, Message: "nil variant"}
		}
		v, err := d.build(command)
		if err != nil {
			return nil, err
		}
		v.node = n
		v.group = g
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].priority > out[j].priority
	})
	return out, nil
}

// NormalizeAliases lower-cases aliases, replaces inner spaces with underscores, drops
// blanks and removes duplicates while keeping order.
func NormalizeAliases(aliases ...string) []string {
	seen := make(map[string]bool, len(aliases))
	out := make([]string, 0, len(aliases))
	for _, a := range aliases {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		a = strings.Join(strings.Fields(a), "_")
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

func sameAliases(a, b []string) bool {
	na, nb := NormalizeAliases(a...), NormalizeAliases(b...)
	if len(na) != len(nb) {
		return false
	}
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}
	return true
}
