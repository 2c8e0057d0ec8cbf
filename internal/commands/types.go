// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"reflect"

	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/registry"
)

// Named suggestion sources registered by Register.
const (
	ItemSourceName    = "item"
	CommandSourceName = "command"
)

// Item marks a string parameter that must name an item in the catalog.
type Item struct{}

// MarkerName implements definition.Marker.
func (Item) MarkerName() string { return "item" }

// registerTypes installs the player converter and source, the item validator and the
// named sources the commands refer to.
func registerTypes(types *registry.Types, world *World, reg *registry.Registry) error {
	playerConverter := registry.NewConverter(func(token string) (*Player, error) {
		p, ok := world.Player(token)
		if !ok {
			return nil, fmt.Errorf("no player named %q is online", token)
		}
		return p, nil
	})
	if err := types.RegisterConverter(playerConverter); err != nil {
		return err
	}

	playerSource := func(any, string, *definition.Parameter) []string {
		players := world.Players()
		out := make([]string, len(players))
		for i, p := range players {
			out[i] = p.Name
		}
		return out
	}
	if err := types.RegisterSource(reflect.TypeFor[*Player](), playerSource); err != nil {
		return err
	}

	itemValidator := registry.NewValidator(func(_ any, value string, _ Item) error {
		if !world.IsItem(value) {
			return fmt.Errorf("unknown item %q", value)
		}
		return nil
	})
	if err := types.RegisterValidator(Item{}, itemValidator); err != nil {
		return err
	}

	itemSource := func(any, string, *definition.Parameter) []string { return world.Items() }
	if err := types.RegisterNamedSource(ItemSourceName, itemSource); err != nil {
		return err
	}

	commandSource := func(any, string, *definition.Parameter) []string {
		var out []string
		for _, n := range reg.Commands() {
			out = append(out, n.Name())
		}
		return out
	}
	return types.RegisterNamedSource(CommandSourceName, commandSource)
}
