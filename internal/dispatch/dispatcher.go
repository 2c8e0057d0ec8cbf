// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch routes raw input to command handlers.
package dispatch

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/slashkit/internal/cooldown"
	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/failure"
	"github.com/jeranaias/slashkit/internal/gate"
	"github.com/jeranaias/slashkit/internal/logger"
	"github.com/jeranaias/slashkit/internal/pipeline"
	"github.com/jeranaias/slashkit/internal/registry"
	"github.com/jeranaias/slashkit/internal/resolver"
	"github.com/jeranaias/slashkit/internal/suggest"
)

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher owns the configuration of one command system: prefix, gates, failure
// routing and the engines built on the registry. It holds no per-call state and is safe
// for concurrent use once constructed.
type Dispatcher struct {
	registry       *registry.Registry
	binder         *pipeline.Binder
	suggester      *suggest.Engine
	prefix         string
	permission     gate.Permission
	cooldown       cooldown.Handler
	handlers       map[failure.Kind]FailureHandler
	fallbacks      map[failure.Kind]failure.Kind
	maxSuggestions int
	logger         *log.Logger
}

// New creates a dispatcher over reg.
func New(reg *registry.Registry, opts ...Option) (*Dispatcher, error) {
	if reg == nil {
		return nil, errors.New("dispatcher needs a registry")
	}
	d := &Dispatcher{
		registry:   reg,
		prefix:     resolver.DefaultPrefix,
		permission: gate.AllowAll,
		cooldown:   cooldown.None,
		handlers:   make(map[failure.Kind]FailureHandler),
		fallbacks:  make(map[failure.Kind]failure.Kind),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.prefix == "" {
		return nil, errors.New("command prefix cannot be empty")
	}
	if d.permission == nil {
		d.permission = gate.AllowAll
	}
	if d.cooldown == nil {
		d.cooldown = cooldown.None
	}
	if d.logger == nil {
		d.logger = logger.Discard()
	}
	for kind, h := range d.handlers {
		if h == nil {
			return nil, fmt.Errorf("failure handler for %s is nil", kind)
		}
	}
	if err := checkFallbacks(d.fallbacks); err != nil {
		return nil, err
	}

	d.binder = pipeline.NewBinder(reg.Types(), d.logger)
	d.suggester = suggest.New(reg, suggest.Config{
		Prefix:     d.prefix,
		Permission: d.permission,
		MaxResults: d.maxSuggestions,
		Logger:     d.logger,
	})
	return d, nil
}

// checkFallbacks rejects fallback chains that loop.
func checkFallbacks(fallbacks map[failure.Kind]failure.Kind) error {
	for start := range fallbacks {
		seen := map[failure.Kind]bool{start: true}
		for k, ok := fallbacks[start]; ok; k, ok = fallbacks[k] {
			if seen[k] {
				return fmt.Errorf("failure fallback from %s loops back to %s", start, k)
			}
			seen[k] = true
		}
	}
	return nil
}

// Registry returns the command registry.
func (d *Dispatcher) Registry() *registry.Registry { return d.registry }

// Prefix returns the configured command prefix.
func (d *Dispatcher) Prefix() string { return d.prefix }

// =============================================================================
// INVOKE
// =============================================================================

// Outcome describes a completed dispatch.
type Outcome struct {
	// Value is the handler result, nil when the handler returns nothing.
	Value any

	// Invoked reports whether a handler ran.
	Invoked bool

	// Variant is the overload that was bound.
	Variant *definition.Variant

	// Failure is the classified failure, already routed to its handler.
	Failure *failure.Error
}

// Invoke dispatches input for sender. Classified failures are routed to the failure
// handlers and reported in Outcome.Failure; the returned error is only set when the
// handler itself returns an error outside the taxonomy. Handler panics are not
// recovered.
func (d *Dispatcher) Invoke(sender any, input string) (Outcome, error) {
	d.enter(StateParse, "input", input)
	tokens, ferr := resolver.Parse(input, d.prefix)
	if ferr != nil {
		return d.fail(ferr, sender), nil
	}

	d.enter(StateResolve, "tokens", len(tokens))
	res, ferr := resolver.Resolve(d.registry, tokens)
	if ferr != nil {
		return d.fail(ferr, sender), nil
	}
	node := res.Node

	d.enter(StateBind, "command", node.Path(), "candidates", len(res.Candidates))
	variant, args, ferr := d.bind(sender, res)
	if ferr != nil {
		ferr.Tokens = tokens
		ferr.Command = node
		return d.fail(ferr, sender), nil
	}

	d.enter(StatePermit, "command", node.Path())
	switch denied := gate.Check(d.permission, sender, node, variant); denied {
	case nil:
	case definition.Target(node):
		return d.fail(failure.PermissionDenied(node, nil), sender), nil
	default:
		return d.fail(failure.PermissionDenied(node, variant), sender), nil
	}

	d.enter(StateGuard, "command", node.Path())
	if g, ok := gate.RunGuards(node, sender); !ok {
		return d.fail(failure.BeforeGuardFailed(tokens, node, variant, g.Name), sender), nil
	}

	if spec, ok := node.Cooldown(); ok {
		d.enter(StateCooldown, "command", node.Path())
		if left := d.cooldown.Remaining(sender, node, spec); left > 0 {
			return d.fail(failure.CooldownActive(node, left), sender), nil
		}
	}

	d.enter(StateInvoke, "command", node.Path())
	value, err := variant.Handler().Call(args)
	if err != nil {
		if fe, ok := failure.As(err); ok {
			fe = fe.Clone()
			if fe.Command == nil {
				fe.Command = node
			}
			if fe.Variant == nil {
				fe.Variant = variant
			}
			out := d.fail(fe, sender)
			out.Invoked = true
			return out, nil
		}
		d.logger.Debug("handler returned error", "command", node.Path(), "error", err)
		return Outcome{Invoked: true, Variant: variant}, err
	}

	d.enter(StateDone, "command", node.Path())
	return Outcome{Value: value, Invoked: true, Variant: variant}, nil
}

// bind tries each candidate in order and returns the first that binds. Recoverable
// failures move on to the next candidate; the last one is reported if none binds.
func (d *Dispatcher) bind(sender any, res *resolver.Resolution) (*definition.Variant, []any, *failure.Error) {
	var last *failure.Error
	for _, v := range res.Candidates {
		args, ferr := d.binder.Bind(sender, res.Args, v)
		if ferr == nil {
			return v, args, nil
		}
		if ferr.Variant == nil {
			ferr.Variant = v
		}
		d.logger.Debug("candidate rejected", "command", res.Node.Path(), "kind", ferr.Kind, "error", ferr.Message)
		last = ferr
		if !ferr.Kind.Recoverable() {
			break
		}
	}
	return nil, nil, last
}

// InvokeAs dispatches input and asserts the handler result to T. A result of another
// type is routed as InternalDispatchError. ok is false whenever no value of type T was
// produced.
func InvokeAs[T any](d *Dispatcher, sender any, input string) (value T, ok bool, err error) {
	out, err := d.Invoke(sender, input)
	if err != nil || !out.Invoked || out.Failure != nil {
		return value, false, err
	}
	if v, isT := out.Value.(T); isT {
		return v, true, nil
	}
	want := reflect.TypeFor[T]()
	if out.Value == nil && nilable(want) {
		return value, true, nil
	}
	d.fail(failure.Internal("%s returned %T, caller expected %s", out.Variant.Node().Path(), out.Value, want), sender)
	return value, false, nil
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// =============================================================================
// SUGGEST
// =============================================================================

// Suggest returns completions for the token being typed. It never fails.
func (d *Dispatcher) Suggest(sender any, input string) []string {
	return d.suggester.Suggest(sender, input)
}

// Complete returns ranked completions with descriptions.
func (d *Dispatcher) Complete(sender any, input string) []suggest.Completion {
	return d.suggester.Complete(sender, input)
}

// =============================================================================
// FAILURE ROUTING
// =============================================================================

func (d *Dispatcher) enter(s State, keyvals ...any) {
	d.logger.Debug("dispatch", append([]any{"state", s}, keyvals...)...)
}

// fail routes f and returns the outcome that reports it.
func (d *Dispatcher) fail(f *failure.Error, sender any) Outcome {
	d.enter(StateFailed, "kind", f.Kind, "error", f.Message)
	if h, ok := d.handlerFor(f.Kind); ok {
		h(f, sender)
	}
	return Outcome{Failure: f, Variant: f.Variant}
}

// handlerFor finds the handler registered for kind, following the fallback chain.
func (d *Dispatcher) handlerFor(kind failure.Kind) (FailureHandler, bool) {
	for {
		if h, ok := d.handlers[kind]; ok {
			return h, true
		}
		next, ok := d.fallbacks[kind]
		if !ok {
			return nil, false
		}
		kind = next
	}
}
