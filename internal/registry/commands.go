// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry owns the type processors and the set of registered commands.
package registry

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jeranaias/slashkit/internal/definition"
)

// snapshot is an immutable view of the registered commands.
type snapshot struct {
	nodes   []*definition.Node
	byAlias map[string]*definition.Node
}

// Registry holds the top-level commands. Writers are serialized; readers see an
// immutable snapshot and never block.
type Registry struct {
	types *Types
	mu    sync.Mutex
	snap  atomic.Pointer[snapshot]
}

// New creates an empty registry whose commands are checked against types.
func New(types *Types) *Registry {
	if types == nil {
		types = NewTypes()
	}
	r := &Registry{types: types}
	r.snap.Store(&snapshot{byAlias: make(map[string]*definition.Node)})
	return r
}

// Types returns the type registry the commands are bound against.
func (r *Registry) Types() *Types { return r.types }

// Register adds top-level commands. Each node is checked for alias collisions with the
// already registered commands and for converters that are missing or produce the wrong
// type. Nothing is registered if any node fails.
func (r *Registry) Register(nodes ...*definition.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	next := &snapshot{
		nodes:   append([]*definition.Node(nil), cur.nodes...),
		byAlias: make(map[string]*definition.Node, len(cur.byAlias)),
	}
	for k, v := range cur.byAlias {
		next.byAlias[k] = v
	}

	for _, n := range nodes {
		if n == nil {
			return &definition.BuildError{Message: "cannot register a nil command"}
		}
		if n.Parent() != nil {
			return &definition.BuildError{Command: n.Path(), Message: "only top-level commands can be registered"}
		}
		for _, alias := range n.Aliases() {
			if other, taken := next.byAlias[alias]; taken {
				return &definition.BuildError{
					Command: n.Name(),
					Message: fmt.Sprintf("alias %q is already used by %s", alias, other.Name()),
				}
			}
		}
		if err := r.checkConverters(n); err != nil {
			return err
		}
		for _, alias := range n.Aliases() {
			next.byAlias[alias] = n
		}
		next.nodes = append(next.nodes, n)
	}

	r.snap.Store(next)
	return nil
}

// checkConverters verifies every token-consuming parameter in the subtree can be bound.
func (r *Registry) checkConverters(root *definition.Node) error {
	var firstErr error
	root.Walk(func(n *definition.Node) {
		if firstErr != nil {
			return
		}
		for _, v := range n.Variants() {
			for _, p := range v.ArgParams() {
				if _, _, err := r.types.ResolveConverter(p); err != nil {
					firstErr = &definition.BuildError{Command: n.Path(), Message: err.Error()}
					return
				}
			}
		}
	})
	return firstErr
}

// Unregister removes the top-level command that owns alias, with all its aliases and
// children. It reports whether a command was removed.
func (r *Registry) Unregister(alias string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snap.Load()
	target, ok := cur.byAlias[strings.ToLower(alias)]
	if !ok {
		return false
	}

	next := &snapshot{
		nodes:   make([]*definition.Node, 0, len(cur.nodes)),
		byAlias: make(map[string]*definition.Node, len(cur.byAlias)),
	}
	for _, n := range cur.nodes {
		if n != target {
			next.nodes = append(next.nodes, n)
		}
	}
	for k, v := range cur.byAlias {
		if v != target {
			next.byAlias[k] = v
		}
	}
	r.snap.Store(next)
	return true
}

// Lookup finds a top-level command by alias, ignoring case.
func (r *Registry) Lookup(alias string) (*definition.Node, bool) {
	n, ok := r.snap.Load().byAlias[strings.ToLower(alias)]
	return n, ok
}

// Commands returns the top-level commands in registration order.
func (r *Registry) Commands() []*definition.Node {
	return append([]*definition.Node(nil), r.snap.Load().nodes...)
}
