// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest builds autocomplete suggestions for partially typed input.
package suggest

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/gate"
	"github.com/jeranaias/slashkit/internal/logger"
	"github.com/jeranaias/slashkit/internal/registry"
	"github.com/jeranaias/slashkit/internal/resolver"
)

// =============================================================================
// ENGINE
// =============================================================================

// Config configures an Engine.
type Config struct {
	// Prefix is the command prefix; empty means resolver.DefaultPrefix.
	Prefix string

	// Permission filters commands, subcommands and variants. Nil allows everything.
	Permission gate.Permission

	// MaxResults caps the number of suggestions; zero means no cap.
	MaxResults int

	Logger *log.Logger
}

// Engine replays command resolution against incomplete input. It never invokes
// handlers and never fails.
type Engine struct {
	registry   *registry.Registry
	prefix     string
	permission gate.Permission
	maxResults int
	logger     *log.Logger
}

// New creates an engine over reg.
func New(reg *registry.Registry, cfg Config) *Engine {
	e := &Engine{
		registry:   reg,
		prefix:     cfg.Prefix,
		permission: cfg.Permission,
		maxResults: cfg.MaxResults,
		logger:     cfg.Logger,
	}
	if e.prefix == "" {
		e.prefix = resolver.DefaultPrefix
	}
	if e.permission == nil {
		e.permission = gate.AllowAll
	}
	if e.logger == nil {
		e.logger = logger.Discard()
	}
	return e
}

// itemKind distinguishes alias completions from parameter values.
type itemKind int

const (
	kindCommand itemKind = iota
	kindSubcommand
	kindValue
)

type item struct {
	value       string
	primary     string
	description string
	kind        itemKind
}

// collector accumulates items and survives a panic in a suggestion source.
type collector struct {
	partial  string
	trailing bool
	items    []item
	seen     map[string]bool
}

func (c *collector) add(it item) {
	if !c.trailing {
		if it.value == c.partial || !hasPrefixFold(it.value, c.partial) {
			return
		}
	}
	if c.seen[it.value] {
		return
	}
	c.seen[it.value] = true
	c.items = append(c.items, it)
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

// Suggest returns the completions for the token being typed, deduplicated and in
// discovery order. Input without the prefix is treated as a command fragment.
func (e *Engine) Suggest(sender any, input string) []string {
	items := e.collect(sender, input)
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.value
	}
	return out
}

func (e *Engine) collect(sender any, input string) (items []item) {
	rest, _ := resolver.Strip(input, e.prefix)
	tokens := resolver.Tokenize(rest)
	c := &collector{trailing: endsWithSpace(input), seen: make(map[string]bool)}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("suggestion source panicked", "input", input, "error", r)
			items = c.items
		}
		if e.maxResults > 0 && len(items) > e.maxResults {
			items = items[:e.maxResults]
		}
	}()

	typed := tokens
	if !c.trailing && len(tokens) > 0 {
		c.partial = tokens[len(tokens)-1]
		typed = tokens[:len(tokens)-1]
	}

	if len(typed) == 0 {
		e.topLevel(sender, c)
		return c.items
	}

	res, ferr := resolver.Walk(e.registry, typed)
	if ferr != nil {
		return nil
	}
	if !gate.Probe(e.permission, sender, res.Node) {
		return nil
	}

	index := len(res.Args)
	occupied := false
	types := e.registry.Types()
	for _, v := range res.Candidates {
		p := paramAt(v, index)
		if p == nil {
			continue
		}
		occupied = true
		if !gate.Probe(e.permission, sender, v) {
			continue
		}
		src, ok := types.ResolveSource(p)
		if !ok {
			continue
		}
		for _, s := range src(sender, c.partial, p) {
			c.add(item{value: s, description: p.Name(), kind: kindValue})
		}
	}

	if !occupied && res.Group == nil && index == 0 {
		e.aliases(sender, res.Node, c)
	}
	return c.items
}

// topLevel offers the aliases of every permitted command.
func (e *Engine) topLevel(sender any, c *collector) {
	for _, n := range e.registry.Commands() {
		if !gate.Probe(e.permission, sender, n) {
			continue
		}
		for _, alias := range n.Aliases() {
			c.add(item{value: alias, primary: n.Name(), description: n.Description(), kind: kindCommand})
		}
	}
}

// aliases offers the named subcommands and children of n.
func (e *Engine) aliases(sender any, n *definition.Node, c *collector) {
	for _, g := range n.Groups() {
		if !e.anyVariantAllowed(sender, g.Variants()) {
			continue
		}
		desc := ""
		if vs := g.Variants(); len(vs) > 0 {
			desc = vs[0].Description()
		}
		for _, alias := range g.Aliases() {
			c.add(item{value: alias, primary: g.Name(), description: desc, kind: kindSubcommand})
		}
	}
	for _, child := range n.Children() {
		if !gate.Probe(e.permission, sender, child) {
			continue
		}
		for _, alias := range child.Aliases() {
			c.add(item{value: alias, primary: child.Name(), description: child.Description(), kind: kindCommand})
		}
	}
}

func (e *Engine) anyVariantAllowed(sender any, variants []*definition.Variant) bool {
	for _, v := range variants {
		if gate.Probe(e.permission, sender, v) {
			return true
		}
	}
	return false
}

// paramAt returns the token-consuming parameter at index. A variadic tail occupies
// every index from its position on.
func paramAt(v *definition.Variant, index int) *definition.Parameter {
	params := v.ArgParams()
	if index < 0 {
		return nil
	}
	if v.HasVariadic() && index >= len(params)-1 {
		return params[len(params)-1]
	}
	if index < len(params) {
		return params[index]
	}
	return nil
}

func endsWithSpace(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}
