// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline converts and validates raw tokens into handler arguments.
package pipeline

import (
	"reflect"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/failure"
	"github.com/jeranaias/slashkit/internal/logger"
	"github.com/jeranaias/slashkit/internal/registry"
)

// Binder assembles the argument list of a variant from the sender and the remaining
// tokens. It is safe for concurrent use.
type Binder struct {
	types  *registry.Types
	logger *log.Logger
}

// NewBinder creates a binder over types. A nil logger discards output.
func NewBinder(types *registry.Types, l *log.Logger) *Binder {
	if l == nil {
		l = logger.Discard()
	}
	return &Binder{types: types, logger: l}
}

// Bind returns the arguments for v in declaration order. The failure, when set, is one
// of SenderTypeMismatch, ArgumentParseFailure, ArgumentValidationFailure or
// InternalDispatchError.
func (b *Binder) Bind(sender any, tokens []string, v *definition.Variant) ([]any, *failure.Error) {
	params := v.Params()
	out := make([]any, len(params))

	if v.HasSender() {
		p := params[v.SenderIndex()]
		if !senderFits(sender, p.Type()) {
			return nil, failure.SenderTypeMismatch(p, sender)
		}
		out[v.SenderIndex()] = sender
	}

	argParams := v.ArgParams()
	fixed := argParams
	if v.HasVariadic() {
		fixed = argParams[:len(argParams)-1]
	}
	if len(tokens) < len(fixed) {
		return nil, failure.Internal("%s received %d tokens for %d parameters", v.Node().Path(), len(tokens), len(fixed))
	}

	// Convert fixed parameters, then validate them in parameter order.
	values := make([]any, len(fixed))
	for i, p := range fixed {
		val, ferr := b.convert(p, tokens[i])
		if ferr != nil {
			return nil, ferr
		}
		values[i] = val
	}
	for i, p := range fixed {
		if ferr := b.validate(sender, p, values[i]); ferr != nil {
			return nil, ferr
		}
	}

	pos := 0
	for i, p := range params {
		if p.IsSender() || p.IsVariadic() {
			continue
		}
		out[i] = values[pos]
		pos++
	}

	if tail := v.Tail(); tail != nil {
		collected, ferr := b.collect(sender, tail, tokens[len(fixed):])
		if ferr != nil {
			return nil, ferr
		}
		out[len(out)-1] = collected
	}

	return out, nil
}

// collect converts and validates every tail token into one typed slice, preserving
// token order.
func (b *Binder) collect(sender any, tail *definition.Parameter, tokens []string) (any, *failure.Error) {
	slice := reflect.MakeSlice(tail.ArgType(), 0, len(tokens))
	for _, tok := range tokens {
		val, ferr := b.convert(tail, tok)
		if ferr != nil {
			return nil, ferr
		}
		if ferr := b.validate(sender, tail, val); ferr != nil {
			return nil, ferr
		}
		slice = reflect.Append(slice, valueOf(val, tail.Type()))
	}
	return slice.Interface(), nil
}

func (b *Binder) convert(p *definition.Parameter, token string) (any, *failure.Error) {
	conv, passthrough, err := b.types.ResolveConverter(p)
	if err != nil {
		return nil, failure.Internal("%v", err)
	}
	if passthrough {
		return token, nil
	}

	val, err := conv.Convert(token)
	if err != nil {
		if fe, ok := failure.As(err); ok {
			return nil, fe.Clone()
		}
		b.logger.Debug("conversion failed", "param", p.Name(), "token", token, "error", err)
		return nil, failure.ArgumentParse(p, token, err)
	}
	if val != nil && !reflect.TypeOf(val).AssignableTo(p.Type()) {
		return nil, failure.Internal("converter for %q returned %T, want %s", p.Name(), val, p.Type())
	}
	return val, nil
}

// validate runs the validators of p's constraint markers, stopping at the first
// violation. Markers without a registered validator are ignored.
func (b *Binder) validate(sender any, p *definition.Parameter, value any) *failure.Error {
	for _, m := range p.Constraints() {
		check, ok := b.types.Validator(m)
		if !ok {
			continue
		}
		if err := check(sender, value, m); err != nil {
			if fe, ok := failure.As(err); ok {
				fe = fe.Clone()
				if fe.Parameter == nil && fe.Kind == failure.KindArgumentValidation {
					fe.Parameter = p
				}
				return fe
			}
			b.logger.Debug("validation failed", "param", p.Name(), "marker", m.MarkerName(), "error", err)
			return failure.ArgumentValidation(p, err)
		}
	}
	return nil
}

// senderFits reports whether sender can be passed as typ. A nil sender fits only
// nilable types.
func senderFits(sender any, typ reflect.Type) bool {
	if sender == nil {
		switch typ.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return true
		}
		return false
	}
	return reflect.TypeOf(sender).AssignableTo(typ)
}

func valueOf(v any, typ reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(typ)
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != typ {
		return rv.Convert(typ)
	}
	return rv
}
