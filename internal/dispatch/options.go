// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"github.com/charmbracelet/log"

	"github.com/jeranaias/slashkit/internal/cooldown"
	"github.com/jeranaias/slashkit/internal/failure"
	"github.com/jeranaias/slashkit/internal/gate"
)

// FailureHandler receives a classified failure together with the sender.
type FailureHandler func(f *failure.Error, sender any)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPrefix sets the command prefix. The default is "/".
func WithPrefix(prefix string) Option {
	return func(d *Dispatcher) { d.prefix = prefix }
}

// WithPermission sets the permission predicate. The default allows everything.
func WithPermission(p gate.Permission) Option {
	return func(d *Dispatcher) { d.permission = p }
}

// WithCooldown sets the cooldown handler. The default never applies a cooldown.
func WithCooldown(h cooldown.Handler) Option {
	return func(d *Dispatcher) { d.cooldown = h }
}

// WithFailureHandler registers h for failures of exactly kind.
func WithFailureHandler(kind failure.Kind, h FailureHandler) Option {
	return func(d *Dispatcher) { d.handlers[kind] = h }
}

// WithFailureFallback routes failures of kind from to the handler of kind to when no
// handler is registered for from. Chains are followed; cycles are rejected by New.
func WithFailureFallback(from, to failure.Kind) Option {
	return func(d *Dispatcher) { d.fallbacks[from] = to }
}

// WithMaxSuggestions caps the number of suggestions; zero means no cap.
func WithMaxSuggestions(n int) Option {
	return func(d *Dispatcher) { d.maxSuggestions = n }
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}
