// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package help

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/gate"
)

type sender struct{ perms map[string]bool }

func (s sender) HasPermission(node string) bool { return s.perms[node] }

func noop() definition.Handler {
	return definition.HandlerFunc(func([]any) (any, error) { return nil, nil })
}

func buildGive(t *testing.T) *definition.Node {
	t.Helper()
	n, err := definition.NewCommand("give", "g").
		Description("Give things to players").
		Permission("cmd.give").
		Cooldown(30*time.Second).
		Subcommand([]string{"item", "i"},
			definition.NewVariant(noop(), definition.SenderParam[sender]("sender"), definition.Param[int]("amount")).
				Description("Give items"),
			definition.NewVariant(noop(), definition.Param[string]("name"), definition.Param[int]("amount")).
				Permission("cmd.give.named")).
		Subcommand([]string{"tags"},
			definition.NewVariant(noop(), definition.Rest[string]("tags", 0))).
		Default(definition.NewVariant(noop(), definition.Rest[string]("players", 1)).
			Syntax("<player> [more players]")).
		Child(definition.NewCommand("xp").
			Permission("cmd.give.xp").
			Default(definition.NewVariant(noop(), definition.Param[int]("points")))).
		Build()
	require.NoError(t, err)
	return n
}

func TestUsage(t *testing.T) {
	n := buildGive(t)
	var usages []string
	for _, e := range Entries("/", n, nil, nil) {
		usages = append(usages, e.Usage)
	}
	assert.Equal(t, []string{
		"/give <player> [more players]",
		"/give item <amount>",
		"/give item <name> <amount>",
		"/give tags [tags...]",
		"/give xp <points>",
	}, usages)
}

func TestUsageRequiredTail(t *testing.T) {
	n, err := definition.NewCommand("say").
		Default(definition.NewVariant(noop(), definition.Rest[string]("words", 1))).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "!say <words...>", Usage("!", n.Defaults()[0]))
}

func TestEntriesDescriptionFallsBackToCommand(t *testing.T) {
	n := buildGive(t)
	entries := Entries("/", n, nil, nil)
	require.NotEmpty(t, entries)
	assert.Equal(t, "Give things to players", entries[0].Description)
	assert.Equal(t, "Give items", entries[1].Description)
}

func TestEntriesPermissionFiltering(t *testing.T) {
	n := buildGive(t)
	perm := gate.NodePermissions()

	tests := []struct {
		name  string
		perms map[string]bool
		want  int
	}{
		{"no permissions", nil, 0},
		{"command only", map[string]bool{"cmd.give": true}, 3},
		{"command and variant", map[string]bool{"cmd.give": true, "cmd.give.named": true}, 4},
		{"everything", map[string]bool{"cmd.give": true, "cmd.give.named": true, "cmd.give.xp": true}, 5},
		{"child without parent", map[string]bool{"cmd.give.xp": true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Entries("/", n, perm, sender{perms: tt.perms})
			assert.Len(t, entries, tt.want)
		})
	}
}

func TestEntriesPanickingPermissionHides(t *testing.T) {
	n := buildGive(t)
	perm := gate.PermissionFunc(func(any, definition.Target) bool { panic("boom") })
	assert.Empty(t, Entries("/", n, perm, nil))
}

func TestListingAlignsColumns(t *testing.T) {
	entries := []Entry{
		{Usage: "/heal", Description: "Restore health"},
		{Usage: "/teleport <x> <y> <z>", Description: "Move somewhere"},
	}
	out := Listing("Commands", entries, 80)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Commands")
	assert.Equal(t, strings.Index(lines[1], "Restore"), strings.Index(lines[2], "Move"))
}

func TestListingTruncatesLongUsage(t *testing.T) {
	entries := []Entry{{Usage: "/" + strings.Repeat("x", 60), Description: "long"}}
	out := Listing("", entries, 40)
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, strings.Repeat("x", 60))
}

func TestMarkdown(t *testing.T) {
	md := Markdown("/", []*definition.Node{buildGive(t)})
	assert.Contains(t, md, "## /give")
	assert.Contains(t, md, "Give things to players")
	assert.Contains(t, md, "**Aliases:** g")
	assert.Contains(t, md, "`cmd.give`")
	assert.Contains(t, md, "**Cooldown:** 30s")
	assert.Contains(t, md, "- `/give item <amount>` Give items")
	assert.Contains(t, md, "- `/give xp <points>`")
}

func TestMarkdownForeverCooldown(t *testing.T) {
	n, err := definition.NewCommand("kit").
		Cooldown(-1).
		Default(definition.NewVariant(noop())).
		Build()
	require.NoError(t, err)
	assert.Contains(t, Markdown("/", []*definition.Node{n}), "**Cooldown:** once")
}

func TestRenderKeepsText(t *testing.T) {
	out := Render("# Commands\n\nhello world\n", 60)
	assert.Contains(t, out, "hello world")
}
