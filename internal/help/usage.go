// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package help renders usage strings and command listings.
package help

import (
	"strings"

	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/gate"
)

// Entry is one line of help: a usage string and its description.
type Entry struct {
	Usage       string
	Description string
	Variant     *definition.Variant
}

// Usage renders the invocation syntax of v, e.g. "/give item <amount>". A declared
// syntax hint replaces the generated parameter list.
func Usage(prefix string, v *definition.Variant) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(v.Node().Path())
	if g := v.Group(); g != nil {
		b.WriteByte(' ')
		b.WriteString(g.Name())
	}

	if v.Syntax() != "" {
		b.WriteByte(' ')
		b.WriteString(v.Syntax())
		return b.String()
	}
	for _, p := range v.ArgParams() {
		b.WriteByte(' ')
		b.WriteString(paramUsage(p))
	}
	return b.String()
}

// paramUsage renders <name>, <name...> for a variadic tail that needs at least one
// token, or [name...] for one that may be empty.
func paramUsage(p *definition.Parameter) string {
	if m, ok := p.Variadic(); ok {
		if m.Min == 0 {
			return "[" + p.Name() + "...]"
		}
		return "<" + p.Name() + "...>"
	}
	return "<" + p.Name() + ">"
}

// Entries lists every variant of n and its descendants that sender may use. A nil
// permission allows everything.
func Entries(prefix string, n *definition.Node, perm gate.Permission, sender any) []Entry {
	if perm == nil {
		perm = gate.AllowAll
	}
	var out []Entry
	n.Walk(func(node *definition.Node) {
		if !visible(perm, sender, node) {
			return
		}
		for _, v := range node.Variants() {
			if !gate.Probe(perm, sender, v) {
				continue
			}
			desc := v.Description()
			if desc == "" {
				desc = node.Description()
			}
			out = append(out, Entry{Usage: Usage(prefix, v), Description: desc, Variant: v})
		}
	})
	return out
}

// visible requires every node from the root down to be permitted.
func visible(perm gate.Permission, sender any, n *definition.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if !gate.Probe(perm, sender, cur) {
			return false
		}
	}
	return true
}
