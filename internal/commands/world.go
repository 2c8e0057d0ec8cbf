// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the built-in demo command set used by the shell.
package commands

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MaxHealth is the health of a fully healed player.
const MaxHealth = 20

// =============================================================================
// POSITION
// =============================================================================

// Vec is a position in the world.
type Vec struct {
	X, Y, Z float64
}

func (v Vec) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}

// =============================================================================
// SENDERS
// =============================================================================

// Player is a sender with permissions, an inventory and a position.
type Player struct {
	ID   uuid.UUID
	Name string

	mu        sync.Mutex
	health    int
	pos       Vec
	frozen    bool
	inventory map[string]int
	perms     map[string]bool
}

// NewPlayer creates a player at full health holding the given permission nodes.
// The node "*" grants everything.
func NewPlayer(name string, perms ...string) *Player {
	p := &Player{
		ID:        uuid.New(),
		Name:      name,
		health:    MaxHealth,
		inventory: make(map[string]int),
		perms:     make(map[string]bool, len(perms)),
	}
	for _, perm := range perms {
		p.perms[perm] = true
	}
	return p
}

// HasPermission reports whether the player holds node.
func (p *Player) HasPermission(node string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.perms["*"] || p.perms[node]
}

// Grant adds permission nodes.
func (p *Player) Grant(perms ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, perm := range perms {
		p.perms[perm] = true
	}
}

// CooldownKey identifies the player across renames.
func (p *Player) CooldownKey() string { return p.ID.String() }

func (p *Player) String() string { return p.Name }

// Health returns the current health.
func (p *Player) Health() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.health
}

// SetHealth sets health, clamped to [0, MaxHealth].
func (p *Player) SetHealth(h int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health = max(0, min(h, MaxHealth))
}

// Position returns the current position.
func (p *Player) Position() Vec {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

// MoveTo sets the position.
func (p *Player) MoveTo(v Vec) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = v
}

// Frozen reports whether the player is frozen in place.
func (p *Player) Frozen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frozen
}

// ToggleFrozen flips the frozen state and returns the new one.
func (p *Player) ToggleFrozen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frozen = !p.frozen
	return p.frozen
}

// Add puts amount of item into the inventory.
func (p *Player) Add(item string, amount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inventory[item] += amount
}

// Inventory returns a copy of the inventory.
func (p *Player) Inventory() map[string]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]int, len(p.inventory))
	for k, v := range p.inventory {
		out[k] = v
	}
	return out
}

// Console is the operator sender. It holds every permission.
type Console struct{}

// HasPermission always allows.
func (Console) HasPermission(string) bool { return true }

func (Console) String() string { return "console" }

// =============================================================================
// WORLD
// =============================================================================

// World holds the online players, the item catalog and the kits.
type World struct {
	mu      sync.RWMutex
	players map[string]*Player
	order   []*Player
	items   map[string]bool
	kits    map[string]map[string]int
	spawn   Vec
}

// NewWorld creates an empty world with the default catalog and kits.
func NewWorld() *World {
	w := &World{
		players: make(map[string]*Player),
		items:   make(map[string]bool),
		kits: map[string]map[string]int{
			"starter": {"bread": 5, "torch": 8, "wood": 16},
			"miner":   {"iron_ingot": 4, "torch": 32},
			"builder": {"stone": 64, "wood": 64},
		},
	}
	for _, item := range []string{"apple", "bread", "diamond", "iron_ingot", "stone", "torch", "wood"} {
		w.items[item] = true
	}
	return w
}

// Join adds p to the world. Names are unique, ignoring case.
func (w *World) Join(p *Player) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := strings.ToLower(p.Name)
	if _, taken := w.players[key]; taken {
		return fmt.Errorf("player %q is already online", p.Name)
	}
	w.players[key] = p
	w.order = append(w.order, p)
	p.MoveTo(w.spawn)
	return nil
}

// Leave removes the named player.
func (w *World) Leave(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := strings.ToLower(name)
	p, ok := w.players[key]
	if !ok {
		return false
	}
	delete(w.players, key)
	for i, o := range w.order {
		if o == p {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// Player finds an online player by name, ignoring case.
func (w *World) Player(name string) (*Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[strings.ToLower(name)]
	return p, ok
}

// Players returns the online players in join order.
func (w *World) Players() []*Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*Player(nil), w.order...)
}

// Spawn returns the spawn point.
func (w *World) Spawn() Vec { return w.spawn }

// IsItem reports whether name is in the catalog.
func (w *World) IsItem(name string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.items[name]
}

// Items returns the catalog, sorted.
func (w *World) Items() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.items))
	for item := range w.items {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// Kit returns the contents of the named kit.
func (w *World) Kit(name string) (map[string]int, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	k, ok := w.kits[name]
	return k, ok
}

// KitNames returns the kit names, sorted.
func (w *World) KitNames() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.kits))
	for name := range w.kits {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
