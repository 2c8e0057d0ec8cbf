// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch routes raw input to command handlers.
//
// A dispatch moves through PARSE, RESOLVE, BIND, PERMIT, GUARD, COOLDOWN and INVOKE
// to DONE, or stops in FAILED with a *failure.Error. Overloads that fail to bind are
// retried in declaration order; the last binding failure is reported when none fits.
//
// Failures are routed to the handler registered for their exact kind. A fallback
// chain can send a kind to a more general handler; it is declared up front with
// WithFailureFallback and checked for cycles. Failures without a handler are
// absorbed and reported only through Outcome.Failure.
//
// # Key Types
//
//   - Dispatcher: Invoke, Suggest and Complete entry points
//   - Outcome: handler result or classified failure
//   - State: dispatch steps, logged at debug level under the "state" key
//
// # Usage
//
//	d, err := dispatch.New(reg,
//	    dispatch.WithPermission(gate.NodePermissions()),
//	    dispatch.WithCooldown(cooldown.NewTracker(cooldown.NewMemoryStore())),
//	    dispatch.WithFailureHandler(failure.KindCommandNotFound, notFound),
//	)
//	out, err := d.Invoke(sender, "/give item 5")
package dispatch
