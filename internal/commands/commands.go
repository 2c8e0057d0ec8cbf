// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"time"

	"github.com/jeranaias/slashkit/internal/convert"
	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/gate"
	"github.com/jeranaias/slashkit/internal/registry"
	"github.com/jeranaias/slashkit/internal/resolver"
	"github.com/jeranaias/slashkit/internal/validate"
)

// Permission nodes used by the built-in commands.
const (
	PermGive            = "slashkit.give"
	PermGiveOthers      = "slashkit.give.others"
	PermHeal            = "slashkit.heal"
	PermHealOthers      = "slashkit.heal.others"
	PermTeleport        = "slashkit.teleport"
	PermTeleportOthers  = "slashkit.teleport.others"
	PermFreeze          = "slashkit.freeze"
	PermKit             = "slashkit.kit"
	PermInventoryOthers = "slashkit.inventory.others"
)

// HealCooldown is how long a sender waits between heals.
const HealCooldown = 10 * time.Second

// Env is what the built-in commands need from their host.
type Env struct {
	World    *World
	Registry *registry.Registry

	// Prefix and Permission are used to render help. They should match the
	// dispatcher's configuration.
	Prefix     string
	Permission gate.Permission

	// Width is the help listing width; 0 means 80.
	Width int
}

// Register installs the built-in types and commands into env.Registry. The registry's
// type registry must already hold the defaults from convert and validate.
func Register(env Env) error {
	if env.World == nil || env.Registry == nil {
		return errors.New("commands need a world and a registry")
	}
	if env.Prefix == "" {
		env.Prefix = resolver.DefaultPrefix
	}
	if env.Permission == nil {
		env.Permission = gate.AllowAll
	}
	if env.Width <= 0 {
		env.Width = 80
	}

	if err := registerTypes(env.Registry.Types(), env.World, env.Registry); err != nil {
		return err
	}

	h := &handlers{env: env}
	var nodes []*definition.Node
	for _, b := range h.builders() {
		n, err := b.Build()
		if err != nil {
			return err
		}
		nodes = append(nodes, n)
	}
	return env.Registry.Register(nodes...)
}

// itemParam is a case-insensitive item name checked against the catalog.
func itemParam() *definition.Parameter {
	return definition.Param[string]("item",
		definition.UseConverter{Name: convert.LowerName},
		definition.UseSource{Name: ItemSourceName},
		Item{})
}

func amountParam() *definition.Parameter {
	return definition.Param[int]("amount", validate.Between(1, 64))
}

func (h *handlers) builders() []*definition.Builder {
	self := definition.SenderParam[*Player]("self")
	target := definition.Param[*Player]("player")
	v := definition.NewVariant

	give := definition.NewCommand("give", "g").
		Description("Give items").
		Permission(PermGive).
		Default(v(definition.Func(h.giveOne), self, itemParam()).
			Description("Give yourself one item")).
		Subcommand([]string{"item", "i"},
			v(definition.Func(h.giveSelf), self, itemParam(), amountParam()).
				Description("Give yourself items"),
			v(definition.Func(h.giveOther), target, itemParam(), amountParam()).
				Description("Give items to a player").
				Permission(PermGiveOthers))

	heal := definition.NewCommand("heal").
		Description("Restore health").
		Permission(PermHeal).
		Cooldown(HealCooldown).
		Default(
			v(definition.Func(h.healSelf), self).Description("Heal yourself"),
			v(definition.Func(h.healOther), target).Description("Heal a player").Permission(PermHealOthers)).
		Subcommand([]string{"all"},
			v(definition.Func(h.healAll)).Description("Heal every player").Permission(PermHealOthers))

	teleport := definition.NewCommand("teleport", "tp").
		Description("Move players around").
		Permission(PermTeleport).
		Guard("not_frozen", 10, notFrozen).
		Default(
			v(definition.Func(h.teleportTo), self,
				definition.Param[float64]("x"), definition.Param[float64]("y"), definition.Param[float64]("z")).
				Description("Teleport to coordinates"),
			v(definition.Func(h.teleportToPlayer), self, target).
				Description("Teleport to a player"),
			v(definition.Func(h.teleportPlayer), definition.Param[*Player]("who"), definition.Param[*Player]("destination")).
				Description("Teleport a player to another").
				Permission(PermTeleportOthers)).
		Child(definition.NewCommand("spawn").
			Description("Return to spawn").
			Permission(PermTeleport).
			Default(v(definition.Func(h.teleportSpawn), self)))

	freeze := definition.NewCommand("freeze").
		Description("Freeze or unfreeze a player").
		Permission(PermFreeze).
		Default(v(definition.Func(h.freeze), target))

	kitNames := h.env.World.KitNames()
	kit := definition.NewCommand("kit").
		Description("Claim a kit, once").
		Permission(PermKit).
		Cooldown(-1).
		Default(v(definition.Func(h.kit), self,
			definition.Param[string]("kit",
				definition.UseConverter{Name: convert.LowerName},
				definition.UseSource{Name: validate.OneOfSourceName},
				validate.OneOf{Values: kitNames})))

	kits := definition.NewCommand("kits").
		Description("List kits").
		Default(v(definition.Func(h.kits)))

	inventory := definition.NewCommand("inventory", "inv").
		Description("Show an inventory").
		Default(
			v(definition.Func(h.inventory), self).Description("Show your inventory"),
			v(definition.Func(h.inventoryOf), target).Description("Show a player's inventory").Permission(PermInventoryOthers))

	say := definition.NewCommand("say").
		Description("Broadcast a message").
		Default(v(definition.Func(h.say), definition.SenderParam[any]("sender"), definition.Rest[string]("message", 1)))

	who := definition.NewCommand("who", "list").
		Description("List online players").
		Default(v(definition.Func(h.who)))

	helpCmd := definition.NewCommand("help", "?").
		Description("Show available commands").
		Default(
			v(definition.Func(h.helpAll), definition.SenderParam[any]("sender")),
			v(definition.Func(h.helpFor), definition.SenderParam[any]("sender"),
				definition.Param[string]("command",
					definition.UseConverter{Name: convert.LowerName},
					definition.UseSource{Name: CommandSourceName})).
				Description("Show usage of one command"))

	return []*definition.Builder{give, heal, teleport, freeze, kit, kits, inventory, say, who, helpCmd}
}

// notFrozen fails for frozen players. Other senders pass.
func notFrozen(sender any) bool {
	p, ok := sender.(*Player)
	return !ok || !p.Frozen()
}
