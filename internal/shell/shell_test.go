// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/slashkit/internal/commands"
	"github.com/jeranaias/slashkit/internal/config"
	"github.com/jeranaias/slashkit/internal/logger"
)

type fixture struct {
	sh  *Shell
	out *bytes.Buffer
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	out := &bytes.Buffer{}
	sh, err := New(Options{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Out:        out,
		Logger:     logger.Discard(),
		Players: []*commands.Player{
			commands.NewPlayer("alice", commands.PermHeal, commands.PermKit, commands.PermTeleport),
			commands.NewPlayer("bob"),
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { sh.Close() })
	return &fixture{sh: sh, out: out}
}

// run executes input and returns what it printed.
func (f *fixture) run(input string) string {
	f.out.Reset()
	f.sh.Execute(input)
	return f.out.String()
}

func TestExecute(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"command", "/who", "Online (2): alice, bob"},
		{"alias", "/list", "Online (2): alice, bob"},
		{"plain text is chat", "hello there", "<console> hello there"},
		{"unknown command", "/nope", "Unknown command /nope. Type /help for a list."},
		{"arity usage", "/give", "/give <item>"},
		{"extra argument", "/kits extra", "Usage:"},
		{"sender mismatch", "/heal", "console cannot use that command."},
		{"parse failure", "/freeze nobody", `Invalid player: no player named "nobody" is online`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, f.run(tt.input), tt.want)
		})
	}
}

func TestBlankInputDoesNothing(t *testing.T) {
	f := newFixture(t, nil)
	assert.False(t, f.sh.Execute("   "))
	assert.Empty(t, f.out.String())
}

func TestQuit(t *testing.T) {
	f := newFixture(t, nil)
	assert.True(t, f.sh.Execute("/quit"))
	assert.True(t, f.sh.Execute("/exit"))
	assert.False(t, f.sh.Execute("/who"))
}

func TestSwitchSender(t *testing.T) {
	f := newFixture(t, nil)

	assert.Contains(t, f.run("/as Alice"), "Now typing as alice")
	p, ok := f.sh.Sender().(*commands.Player)
	require.True(t, ok)
	assert.Equal(t, "alice", p.Name)

	assert.Contains(t, f.run("/heal"), "You have been healed")
	assert.Contains(t, f.run("hi"), "<alice> hi")
	assert.Contains(t, f.run("/kit nothing"), "Invalid kit")

	assert.Contains(t, f.run("/as nobody"), `no player named "nobody" is online`)
	assert.Equal(t, p, f.sh.Sender())

	assert.Contains(t, f.run("/as console"), "Now typing as console")
	assert.Equal(t, commands.Console{}, f.sh.Sender())
}

func TestPermissionDenied(t *testing.T) {
	f := newFixture(t, nil)
	f.run("/as bob")
	assert.Contains(t, f.run("/freeze alice"), "You do not have permission to do that.")
	assert.Contains(t, f.run("/config"), "You do not have permission to do that.")
}

func TestGuardFailure(t *testing.T) {
	f := newFixture(t, nil)
	assert.Contains(t, f.run("/freeze alice"), "alice is frozen")

	f.run("/as alice")
	assert.Contains(t, f.run("/tp 1 2 3"), "You cannot do that right now (not frozen).")

	f.run("/as console")
	assert.Contains(t, f.run("/freeze alice"), "alice can move again")
	f.run("/as alice")
	assert.Contains(t, f.run("/tp 1 2 3"), "Teleported to (1.0, 2.0, 3.0)")
}

func TestCooldownMessages(t *testing.T) {
	f := newFixture(t, nil)
	f.run("/as alice")

	assert.Contains(t, f.run("/heal"), "You have been healed")
	assert.Contains(t, f.run("/heal"), "before using /heal again.")

	assert.Contains(t, f.run("/kit starter"), "Claimed kit starter")
	assert.Contains(t, f.run("/kit miner"), "You can only use /kit once.")
}

func TestJoinAndLeave(t *testing.T) {
	f := newFixture(t, nil)

	assert.Contains(t, f.run("/join carol slashkit.heal slashkit.kit"), "carol joined with 2 permission(s)")
	carol, ok := f.sh.World().Player("carol")
	require.True(t, ok)
	assert.True(t, carol.HasPermission(commands.PermHeal))
	assert.False(t, carol.HasPermission(commands.PermFreeze))

	assert.Contains(t, f.run("/join dave"), "dave joined with 0 permission(s)")
	assert.Contains(t, f.run("/join alice"), `player "alice" is already online`)
	assert.Contains(t, f.run("/join console"), "that name is reserved")

	f.run("/as carol")
	assert.Contains(t, f.run("/leave carol"), "carol left")
	assert.Equal(t, commands.Console{}, f.sh.Sender())
	_, ok = f.sh.World().Player("carol")
	assert.False(t, ok)
}

func TestConfigCommand(t *testing.T) {
	f := newFixture(t, nil)

	assert.Contains(t, f.run("/config"), "cooldown.store = memory")
	assert.Contains(t, f.run("/config get prefix"), "prefix = /")
	assert.Contains(t, f.run("/config get nope"), "unknown field")

	assert.Contains(t, f.run("/config set suggest.max_results 5"), "(applies after restart)")
	assert.Equal(t, 5, f.sh.Config().Suggest.MaxResults)

	out := f.run("/config set cooldown.burst 0")
	assert.Contains(t, out, "cooldown.burst: must be at least 1")
	assert.Equal(t, 1, f.sh.Config().Cooldown.Burst)

	assert.Contains(t, f.run("/config set log.level loud"), "Invalid argument")
	assert.Equal(t, "info", f.sh.Config().Log.Level)

	assert.Contains(t, f.run("/config save"), "Saved ")
	saved, err := config.LoadFromPath(f.sh.configPath)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Suggest.MaxResults)
}

func TestCompletions(t *testing.T) {
	f := newFixture(t, nil)

	assert.Contains(t, f.sh.Completions("/wh"), "/who")
	assert.ElementsMatch(t, []string{"/as console", "/as alice", "/as bob"}, f.sh.Completions("/as "))
	assert.Equal(t, []string{"/as alice"}, f.sh.Completions("/as al"))
	assert.Contains(t, f.sh.Completions("/config get cooldown."), "/config get cooldown.store")
	assert.Contains(t, f.sh.Completions("/join carol slashkit.he"), "/join carol slashkit.heal")
}

func TestSQLiteCooldownSurvivesRestart(t *testing.T) {
	cfg := config.Default()
	cfg.Cooldown.Store = config.StoreSQLite
	cfg.Cooldown.Path = filepath.Join(t.TempDir(), "cooldowns.db")

	first := newFixture(t, cfg)
	first.run("/as alice")
	assert.Contains(t, first.run("/kit builder"), "Claimed kit builder")
	require.NoError(t, first.sh.Close())

	second := newFixture(t, cfg)
	second.run("/as alice")
	assert.Contains(t, second.run("/kit builder"), "You can only use /kit once.")
}

func TestLimiterCooldown(t *testing.T) {
	cfg := config.Default()
	cfg.Cooldown.Store = config.StoreLimiter

	f := newFixture(t, cfg)
	f.run("/as alice")
	assert.Contains(t, f.run("/heal"), "You have been healed")
	assert.Contains(t, f.run("/heal"), "before using /heal again.")
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestSwitchSenderDirect(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.sh.SwitchSender("BOB"))
	p, ok := f.sh.Sender().(*commands.Player)
	require.True(t, ok)
	assert.Equal(t, "bob", p.Name)

	assert.Error(t, f.sh.SwitchSender("carol"))
	assert.Equal(t, p, f.sh.Sender())
}

func TestHelpMarkdown(t *testing.T) {
	f := newFixture(t, nil)
	md := f.sh.HelpMarkdown()
	assert.Contains(t, md, "/give")
	assert.Contains(t, md, "/config set <key> <value>")
}
