// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/slashkit/internal/commands"
	"github.com/jeranaias/slashkit/internal/config"
	"github.com/jeranaias/slashkit/internal/cooldown"
)

// senderKey keys cooldowns by player name so that a persistent store survives restarts.
// The console is never on cooldown.
func senderKey(sender any) (string, bool) {
	if p, ok := sender.(*commands.Player); ok {
		return "player:" + strings.ToLower(p.Name), true
	}
	return "", false
}

// newCooldown builds the cooldown handler selected by c. The returned closer is nil
// unless the store holds resources.
func newCooldown(c config.CooldownConfig, l *log.Logger) (cooldown.Handler, io.Closer, error) {
	opts := []cooldown.Option{cooldown.WithKey(senderKey), cooldown.WithLogger(l)}
	switch c.Store {
	case config.StoreSQLite:
		store, err := cooldown.OpenSQLiteStore(c.Path, l)
		if err != nil {
			return nil, nil, err
		}
		return cooldown.NewTracker(store, opts...), store, nil
	case config.StoreLimiter:
		return cooldown.NewLimiter(c.Burst, opts...), nil, nil
	default:
		return cooldown.NewTracker(cooldown.NewMemoryStore(), opts...), nil, nil
	}
}
