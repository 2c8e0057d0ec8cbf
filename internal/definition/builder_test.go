// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package definition

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagMarker struct{}

func (tagMarker) MarkerName() string { return "tag" }

func noop() Handler {
	return HandlerFunc(func([]any) (any, error) { return nil, nil })
}

func TestNormalizeAliases(t *testing.T) {
	assert.Equal(t, []string{"give", "g", "give_all"}, NormalizeAliases(" Give ", "G", "", "give", "give  all"))
	assert.Empty(t, NormalizeAliases("", "  "))
}

func TestBuildNode(t *testing.T) {
	n, err := NewCommand("Give", "g").
		Description("give things").
		Permission("cmd.give").
		Cooldown(5*time.Second).
		Owner("plugin").
		Guard("low", 1, func(any) bool { return true }).
		Guard("high", 10, func(any) bool { return true }).
		Subcommand([]string{"item"}, NewVariant(noop(), Param[int]("amount")).Priority(1)).
		Subcommand([]string{"ITEM"}, NewVariant(noop(), Param[string]("name")).Priority(5)).
		Default(NewVariant(noop())).
		Child(NewCommand("xp").Default(NewVariant(noop(), Param[int]("points")))).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "give", n.Name())
	assert.Equal(t, []string{"give", "g"}, n.Aliases())
	assert.Equal(t, "give", n.Path())
	assert.Equal(t, "give things", n.Description())
	assert.Equal(t, "cmd.give", n.Permission())
	assert.Equal(t, "plugin", n.Owner())

	cd, ok := n.Cooldown()
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, cd.Duration)
	assert.False(t, cd.Forever())

	guards := n.Guards()
	require.Len(t, guards, 2)
	assert.Equal(t, "high", guards[0].Name)

	g, ok := n.Group("Item")
	require.True(t, ok)
	variants := g.Variants()
	require.Len(t, variants, 2, "same alias list appends overloads")
	assert.Equal(t, 5, variants[0].Priority(), "higher priority first")
	assert.Same(t, g, variants[0].Group())
	assert.Same(t, n, variants[0].Node())

	child, ok := n.Child("XP")
	require.True(t, ok)
	assert.Equal(t, "give xp", child.Path())
	assert.Same(t, n, child.Parent())

	var walked []string
	n.Walk(func(node *Node) { walked = append(walked, node.Path()) })
	assert.Equal(t, []string{"give", "give xp"}, walked)

	assert.Len(t, n.Variants(), 3)
	assert.Nil(t, n.Defaults()[0].Group())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		want    string
	}{
		{"empty aliases", NewCommand(" "), "aliases are empty"},
		{"no variants", NewCommand("x"), "has no default or named subcommands"},
		{"nil handler", NewCommand("x").Default(NewVariant(nil)), "variant has no handler"},
		{"nil parameter type", NewCommand("x").Default(NewVariant(noop(), ParamOf("p", nil))), "parameter 0 has no type"},
		{"two senders", NewCommand("x").Default(NewVariant(noop(), SenderParam[string]("a"), SenderParam[string]("b"))), "more than one sender"},
		{"variadic sender", NewCommand("x").Default(NewVariant(noop(), Param[string]("s", Sender{}, Variadic{}))), "sender parameter cannot be variadic"},
		{"variadic not last", NewCommand("x").Default(NewVariant(noop(), Rest[string]("a", 0), Param[int]("b"))), "must be last"},
		{"negative minimum", NewCommand("x").Default(NewVariant(noop(), Rest[string]("a", -1))), "negative minimum"},
		{"guard without check", NewCommand("x").Guard("g", 0, nil).Default(NewVariant(noop())), "has no check"},
		{"empty group", NewCommand("x").Subcommand([]string{"a"}), "has no variants"},
		{"empty group aliases", NewCommand("x").Subcommand(nil, NewVariant(noop())), "subcommand aliases are empty"},
		{"group alias twice", NewCommand("x").Subcommand([]string{"a", "b"}, NewVariant(noop())).Subcommand([]string{"b"}, NewVariant(noop())), "declared twice"},
		{"group shadows command", NewCommand("warp", "w").Subcommand([]string{"set", "W"}, NewVariant(noop())), "subcommand alias \"w\" conflicts with command alias"},
		{"child clash", NewCommand("x").Subcommand([]string{"a"}, NewVariant(noop())).Child(NewCommand("a").Default(NewVariant(noop()))), "conflicts with subcommand"},
		{"child twice", NewCommand("x").Default(NewVariant(noop())).Child(NewCommand("a").Default(NewVariant(noop())), NewCommand("a").Default(NewVariant(noop()))), "child alias \"a\" declared twice"},
		{"bad child", NewCommand("x").Default(NewVariant(noop())).Child(NewCommand("a")), "command x a: has no default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)
			var be *BuildError
			require.True(t, errors.As(err, &be))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestVariantArity(t *testing.T) {
	n, err := NewCommand("x").
		Subcommand([]string{"fixed"}, NewVariant(noop(), SenderParam[string]("s"), Param[int]("a"), Param[int]("b"))).
		Subcommand([]string{"tail"}, NewVariant(noop(), Param[int]("a"), Rest[string]("rest", 2))).
		Build()
	require.NoError(t, err)

	fixed := n.Groups()[0].Variants()[0]
	assert.True(t, fixed.HasSender())
	assert.Equal(t, 0, fixed.SenderIndex())
	assert.Equal(t, 2, fixed.FixedArity())
	assert.Equal(t, 2, fixed.RequiredArgs())
	assert.True(t, fixed.Accepts(2))
	assert.False(t, fixed.Accepts(3))
	assert.Len(t, fixed.ArgParams(), 2)
	assert.Nil(t, fixed.Tail())

	tail := n.Groups()[1].Variants()[0]
	assert.False(t, tail.HasSender())
	assert.Equal(t, -1, tail.SenderIndex())
	assert.True(t, tail.HasVariadic())
	assert.Equal(t, 1, tail.FixedArity())
	assert.Equal(t, 3, tail.RequiredArgs())
	assert.False(t, tail.Accepts(2))
	assert.True(t, tail.Accepts(3))
	assert.True(t, tail.Accepts(10))
	assert.Equal(t, "rest", tail.Tail().Name())
}

func TestParameterMarkers(t *testing.T) {
	p := Rest[int]("amounts", 1, UseConverter{Name: "hex"}, UseSource{Name: "nums"}, tagMarker{})
	assert.True(t, p.IsVariadic())
	assert.False(t, p.IsSender())
	name, ok := p.ConverterName()
	assert.True(t, ok)
	assert.Equal(t, "hex", name)
	src, ok := p.SourceName()
	assert.True(t, ok)
	assert.Equal(t, "nums", src)
	assert.Equal(t, []Marker{tagMarker{}}, p.Constraints())
	assert.Equal(t, reflect.TypeFor[int](), p.Type())
	assert.Equal(t, reflect.TypeFor[[]int](), p.ArgType())
	assert.Len(t, p.Markers(), 4)

	plain := Param[string]("name")
	_, ok = plain.ConverterName()
	assert.False(t, ok)
	assert.Empty(t, plain.Constraints())
	assert.Equal(t, reflect.TypeFor[string](), plain.ArgType())
}
