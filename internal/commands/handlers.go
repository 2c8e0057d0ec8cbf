// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jeranaias/slashkit/internal/failure"
	"github.com/jeranaias/slashkit/internal/help"
)

// handlers holds the command implementations. Every handler returns the message shown
// to the sender.
type handlers struct {
	env Env
}

// =============================================================================
// GIVE
// =============================================================================

func (h *handlers) giveOne(self *Player, item string) string {
	return h.giveSelf(self, item, 1)
}

func (h *handlers) giveSelf(self *Player, item string, amount int) string {
	self.Add(item, amount)
	return fmt.Sprintf("Gave %d %s to %s", amount, item, self.Name)
}

func (h *handlers) giveOther(target *Player, item string, amount int) string {
	target.Add(item, amount)
	return fmt.Sprintf("Gave %d %s to %s", amount, item, target.Name)
}

// =============================================================================
// HEAL
// =============================================================================

func (h *handlers) healSelf(self *Player) string {
	self.SetHealth(MaxHealth)
	return "You have been healed"
}

func (h *handlers) healOther(target *Player) string {
	target.SetHealth(MaxHealth)
	return fmt.Sprintf("Healed %s", target.Name)
}

func (h *handlers) healAll() string {
	players := h.env.World.Players()
	for _, p := range players {
		p.SetHealth(MaxHealth)
	}
	return fmt.Sprintf("Healed %d player(s)", len(players))
}

// =============================================================================
// TELEPORT
// =============================================================================

func (h *handlers) teleportTo(self *Player, x, y, z float64) string {
	dest := Vec{X: x, Y: y, Z: z}
	self.MoveTo(dest)
	return fmt.Sprintf("Teleported to %s", dest)
}

func (h *handlers) teleportToPlayer(self, target *Player) (string, error) {
	if self == target {
		return "", failure.ArgumentValidation(nil, errors.New("cannot teleport to yourself"))
	}
	self.MoveTo(target.Position())
	return fmt.Sprintf("Teleported to %s", target.Name), nil
}

func (h *handlers) teleportPlayer(who, dest *Player) string {
	who.MoveTo(dest.Position())
	return fmt.Sprintf("Teleported %s to %s", who.Name, dest.Name)
}

func (h *handlers) teleportSpawn(self *Player) string {
	self.MoveTo(h.env.World.Spawn())
	return "Teleported to spawn"
}

// =============================================================================
// PLAYERS
// =============================================================================

func (h *handlers) freeze(target *Player) string {
	if target.ToggleFrozen() {
		return fmt.Sprintf("%s is frozen", target.Name)
	}
	return fmt.Sprintf("%s can move again", target.Name)
}

func (h *handlers) kit(self *Player, name string) string {
	contents, _ := h.env.World.Kit(name)
	for item, amount := range contents {
		self.Add(item, amount)
	}
	return fmt.Sprintf("Claimed kit %s: %s", name, formatItems(contents))
}

func (h *handlers) kits() string {
	names := h.env.World.KitNames()
	lines := make([]string, len(names))
	for i, name := range names {
		contents, _ := h.env.World.Kit(name)
		lines[i] = fmt.Sprintf("%s: %s", name, formatItems(contents))
	}
	return strings.Join(lines, "\n")
}

func (h *handlers) inventory(self *Player) string {
	return "Inventory: " + formatItems(self.Inventory())
}

func (h *handlers) inventoryOf(target *Player) string {
	return fmt.Sprintf("Inventory of %s: %s", target.Name, formatItems(target.Inventory()))
}

func (h *handlers) say(sender any, message []string) string {
	return fmt.Sprintf("[%v] %s", sender, strings.Join(message, " "))
}

func (h *handlers) who() string {
	players := h.env.World.Players()
	if len(players) == 0 {
		return "Nobody is online"
	}
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return fmt.Sprintf("Online (%d): %s", len(names), strings.Join(names, ", "))
}

// formatItems renders an item map as "bread x5, torch x8", sorted by name.
func formatItems(items map[string]int) string {
	if len(items) == 0 {
		return "empty"
	}
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s x%d", name, items[name])
	}
	return strings.Join(parts, ", ")
}

// =============================================================================
// HELP
// =============================================================================

func (h *handlers) helpAll(sender any) string {
	var entries []help.Entry
	for _, n := range h.env.Registry.Commands() {
		entries = append(entries, help.Entries(h.env.Prefix, n, h.env.Permission, sender)...)
	}
	return help.Listing("Commands", entries, h.env.Width)
}

func (h *handlers) helpFor(sender any, command string) (string, error) {
	n, ok := h.env.Registry.Lookup(command)
	if !ok {
		return "", failure.CommandNotFound([]string{command})
	}
	entries := help.Entries(h.env.Prefix, n, h.env.Permission, sender)
	if len(entries) == 0 {
		return "", failure.PermissionDenied(n, nil)
	}
	title := h.env.Prefix + n.Name()
	if desc := n.Description(); desc != "" {
		title += " - " + desc
	}
	return help.Listing(title, entries, h.env.Width), nil
}
