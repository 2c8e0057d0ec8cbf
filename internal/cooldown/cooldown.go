// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cooldown tracks per-sender command cooldowns.
package cooldown

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/logger"
)

// Forever is reported as the remaining wait of a cooldown that never expires.
const Forever = time.Duration(math.MaxInt64)

// Handler reports how long sender must still wait before using node. Zero means ready.
// A ready answer may start a new cooldown window.
type Handler interface {
	Remaining(sender any, node *definition.Node, spec definition.Cooldown) time.Duration
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(sender any, node *definition.Node, spec definition.Cooldown) time.Duration

// Remaining implements Handler.
func (f HandlerFunc) Remaining(sender any, node *definition.Node, spec definition.Cooldown) time.Duration {
	return f(sender, node, spec)
}

// None never puts anything on cooldown.
var None Handler = HandlerFunc(func(any, *definition.Node, definition.Cooldown) time.Duration { return 0 })

// =============================================================================
// KEYS
// =============================================================================

// Keyed is implemented by senders that provide their own cooldown identity.
type Keyed interface {
	CooldownKey() string
}

// KeyFunc maps a sender to its cooldown identity. Returning false exempts the sender.
type KeyFunc func(sender any) (string, bool)

// DefaultKey uses CooldownKey when available, then String, then the formatted value.
// A nil sender is exempt.
func DefaultKey(sender any) (string, bool) {
	switch s := sender.(type) {
	case nil:
		return "", false
	case Keyed:
		return s.CooldownKey(), true
	case fmt.Stringer:
		return s.String(), true
	}
	return fmt.Sprintf("%T:%v", sender, sender), true
}

func storeKey(sender string, node *definition.Node) string {
	return sender + "|" + node.Path()
}

// =============================================================================
// STORE
// =============================================================================

// Store holds cooldown expiries. Implementations must be safe for concurrent use.
type Store interface {
	// GetOrSet returns the wait left on key at now. When key is absent or expired it
	// records a new window of ttl (negative ttl never expires) and returns zero.
	GetOrSet(key string, now time.Time, ttl time.Duration) (time.Duration, error)
}

// =============================================================================
// TRACKER
// =============================================================================

// Tracker is the default Handler. It keys entries by sender identity and command path
// and checks expiry lazily on each access.
type Tracker struct {
	store  Store
	key    KeyFunc
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Tracker or Limiter.
type Option func(*options)

type options struct {
	key    KeyFunc
	now    func() time.Time
	logger *log.Logger
}

// WithKey sets the sender identity function.
func WithKey(fn KeyFunc) Option { return func(o *options) { o.key = fn } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

// WithLogger sets the logger used for store errors.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

func applyOptions(opts []Option) options {
	o := options{key: DefaultKey, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Discard()
	}
	return o
}

// NewTracker creates a tracker backed by store.
func NewTracker(store Store, opts ...Option) *Tracker {
	o := applyOptions(opts)
	return &Tracker{store: store, key: o.key, now: o.now, logger: o.logger}
}

// Remaining implements Handler. Store errors are logged and treated as ready.
func (t *Tracker) Remaining(sender any, node *definition.Node, spec definition.Cooldown) time.Duration {
	if spec.Duration == 0 {
		return 0
	}
	id, ok := t.key(sender)
	if !ok {
		return 0
	}
	left, err := t.store.GetOrSet(storeKey(id, node), t.now(), spec.Duration)
	if err != nil {
		t.logger.Warn("cooldown store failed", "command", node.Path(), "error", err)
		return 0
	}
	return left
}
