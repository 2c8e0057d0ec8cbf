// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jeranaias/slashkit/internal/commands"
	"github.com/jeranaias/slashkit/internal/config"
	"github.com/jeranaias/slashkit/internal/convert"
	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/failure"
	"github.com/jeranaias/slashkit/internal/logger"
)

// PermConfig guards /config.
const PermConfig = "slashkit.config"

// Named sources registered by the shell.
const (
	senderSourceName     = "sender"
	permissionSourceName = "permission"
	configKeySourceName  = "config_key"
)

func (s *Shell) registerBuiltins() error {
	types := s.registry.Types()
	sources := map[string]func() []string{
		senderSourceName:     s.senderNames,
		permissionSourceName: s.permissionNodes,
		configKeySourceName:  config.Keys,
	}
	for name, list := range sources {
		list := list
		src := func(any, string, *definition.Parameter) []string { return list() }
		if err := types.RegisterNamedSource(name, src); err != nil {
			return err
		}
	}

	v := definition.NewVariant
	lower := definition.UseConverter{Name: convert.LowerName}
	key := definition.Param[string]("key", lower, definition.UseSource{Name: configKeySourceName})

	builders := []*definition.Builder{
		definition.NewCommand("as").
			Description("Switch who is typing").
			Default(v(definition.Func(s.switchSender),
				definition.Param[string]("sender", lower, definition.UseSource{Name: senderSourceName}))),

		definition.NewCommand("join").
			Description("Add a player").
			Default(v(definition.Func(s.join),
				definition.Param[string]("name"),
				definition.Rest[string]("permissions", 0, definition.UseSource{Name: permissionSourceName}))),

		definition.NewCommand("leave").
			Description("Remove a player").
			Default(v(definition.Func(s.leave), definition.Param[*commands.Player]("player"))),

		definition.NewCommand("quit", "exit").
			Description("Leave the shell").
			Default(v(definition.Func(func() quitSignal { return quitSignal{} }))),

		definition.NewCommand("config").
			Description("Show or change settings").
			Permission(PermConfig).
			Default(v(definition.Func(s.configShow)).Description("Show all settings")).
			Subcommand([]string{"get"}, v(definition.Func(s.configGet), key).Description("Show one setting")).
			Subcommand([]string{"set"}, v(definition.Func(s.configSet), key, definition.Param[string]("value")).Description("Change a setting")).
			Subcommand([]string{"save"}, v(definition.Func(s.configSave)).Description("Write settings to disk")),
	}

	nodes := make([]*definition.Node, 0, len(builders))
	for _, b := range builders {
		n, err := b.Build()
		if err != nil {
			return err
		}
		nodes = append(nodes, n)
	}
	return s.registry.Register(nodes...)
}

// =============================================================================
// SENDERS
// =============================================================================

func (s *Shell) senderNames() []string {
	names := []string{commands.Console{}.String()}
	for _, p := range s.world.Players() {
		names = append(names, p.Name)
	}
	return names
}

// permissionNodes lists every permission declared on a registered command or variant.
func (s *Shell) permissionNodes() []string {
	seen := map[string]bool{"*": true}
	for _, root := range s.registry.Commands() {
		root.Walk(func(n *definition.Node) {
			if p := n.Permission(); p != "" {
				seen[p] = true
			}
			for _, v := range n.Variants() {
				if p := v.Permission(); p != "" {
					seen[p] = true
				}
			}
		})
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s *Shell) switchSender(name string) (string, error) {
	if err := s.SwitchSender(name); err != nil {
		return "", failure.ArgumentValidation(nil, err)
	}
	return fmt.Sprintf("Now typing as %v", s.sender), nil
}

func (s *Shell) join(name string, permissions []string) (string, error) {
	if strings.EqualFold(name, commands.Console{}.String()) {
		return "", failure.ArgumentValidation(nil, errors.New("that name is reserved"))
	}
	p := commands.NewPlayer(name, permissions...)
	if err := s.world.Join(p); err != nil {
		return "", failure.ArgumentValidation(nil, err)
	}
	return fmt.Sprintf("%s joined with %d permission(s)", p.Name, len(permissions)), nil
}

func (s *Shell) leave(p *commands.Player) string {
	s.world.Leave(p.Name)
	if s.sender == any(p) {
		s.sender = commands.Console{}
	}
	return p.Name + " left"
}

// =============================================================================
// CONFIG
// =============================================================================

func (s *Shell) configShow() string {
	keys := config.Keys()
	lines := make([]string, len(keys))
	for i, k := range keys {
		v, _ := s.cfg.Get(k)
		lines[i] = fmt.Sprintf("%s = %v", k, v)
	}
	return strings.Join(lines, "\n")
}

func (s *Shell) configGet(key string) (string, error) {
	v, err := s.cfg.Get(key)
	if err != nil {
		return "", failure.ArgumentValidation(nil, err)
	}
	return fmt.Sprintf("%s = %v", key, v), nil
}

// configSet validates the change on a copy before applying it. Only log settings take
// effect immediately; the rest apply on the next start.
func (s *Shell) configSet(key, value string) (string, error) {
	next := s.cfg.Clone()
	if err := next.Set(key, value); err != nil {
		return "", failure.ArgumentValidation(nil, err)
	}
	if err := next.Validate(); err != nil {
		return "", failure.ArgumentValidation(nil, err)
	}
	s.cfg = next

	msg := fmt.Sprintf("%s = %s", key, value)
	if key == "log.level" {
		lvl, err := logger.ParseLevel(value)
		if err != nil {
			return "", failure.ArgumentValidation(nil, err)
		}
		s.logger.SetLevel(lvl)
		logger.Logger.SetLevel(lvl)
		return msg, nil
	}
	return msg + " (applies after restart)", nil
}

func (s *Shell) configSave() (string, error) {
	if err := config.SaveTo(s.cfg, s.configPath); err != nil {
		return "", err
	}
	return "Saved " + s.configPath, nil
}
