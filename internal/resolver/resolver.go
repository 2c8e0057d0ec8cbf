// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resolver turns raw input into tokens and walks the command tree.
package resolver

import (
	"strings"

	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/failure"
)

// DefaultPrefix is the prefix used when none is configured.
const DefaultPrefix = "/"

// Lookup finds top-level commands by alias. *registry.Registry implements it.
type Lookup interface {
	Lookup(alias string) (*definition.Node, bool)
}

// =============================================================================
// PARSE
// =============================================================================

// Strip trims input and removes prefix. ok is false when the input does not start
// with prefix.
func Strip(input, prefix string) (rest string, ok bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, prefix) {
		return trimmed, false
	}
	return trimmed[len(prefix):], true
}

// Tokenize splits on runs of whitespace. There is no quoting.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// Parse strips the prefix and tokenizes. Input without the prefix is PlainTextInput.
func Parse(input, prefix string) ([]string, *failure.Error) {
	rest, ok := Strip(input, prefix)
	if !ok {
		return nil, failure.PlainText(prefix)
	}
	return Tokenize(rest), nil
}

// =============================================================================
// RESOLUTION
// =============================================================================

// Resolution is the outcome of walking the tree for a token list.
type Resolution struct {
	// Tokens is the full token list.
	Tokens []string

	// Node is the deepest command reached through aliases.
	Node *definition.Node

	// Group is the named subcommand whose alias was consumed, nil for defaults.
	Group *definition.Group

	// Consumed counts the alias tokens used for the command, its children and the group.
	Consumed int

	// Candidates are the variants selected for the remaining tokens, in trial order.
	Candidates []*definition.Variant

	// Args are the tokens left for the variant parameters.
	Args []string
}

// NodeDepth is the number of tokens consumed by command and child aliases.
func (r *Resolution) NodeDepth() int {
	if r.Group != nil {
		return r.Consumed - 1
	}
	return r.Consumed
}

// Walk descends the tree without checking arity or requiring any candidates. It fails
// only when the first token is not a registered command.
func Walk(lookup Lookup, tokens []string) (*Resolution, *failure.Error) {
	if len(tokens) == 0 {
		return nil, failure.CommandNotFound(tokens)
	}
	node, ok := lookup.Lookup(tokens[0])
	if !ok {
		return nil, failure.CommandNotFound(tokens)
	}

	i := 1
	for i < len(tokens) {
		child, ok := node.Child(tokens[i])
		if !ok {
			break
		}
		node = child
		i++
	}

	res := &Resolution{Tokens: tokens, Node: node}
	if i < len(tokens) {
		if g, ok := node.Group(tokens[i]); ok {
			res.Group = g
			i++
		}
	}
	if res.Group != nil {
		res.Candidates = res.Group.Variants()
	} else {
		res.Candidates = node.Defaults()
	}
	res.Consumed = i
	res.Args = tokens[i:]
	return res, nil
}

// Resolve walks the tree and keeps only the arity-compatible candidates.
func Resolve(lookup Lookup, tokens []string) (*Resolution, *failure.Error) {
	res, ferr := Walk(lookup, tokens)
	if ferr != nil {
		return nil, ferr
	}
	if len(res.Candidates) == 0 {
		return nil, failure.SubcommandNotFound(tokens, res.Node)
	}

	n := len(res.Args)
	accepted := make([]*definition.Variant, 0, len(res.Candidates))
	var rejected []*definition.Variant
	for _, v := range res.Candidates {
		if v.Accepts(n) {
			accepted = append(accepted, v)
		} else {
			rejected = append(rejected, v)
		}
	}
	if len(accepted) == 0 {
		return nil, failure.IncorrectArgumentCount(tokens, res.Node, n, rejected)
	}
	res.Candidates = accepted
	return res, nil
}
