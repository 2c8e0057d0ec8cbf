// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package definition holds the immutable command tree that the dispatcher routes into.
package definition

import (
	"fmt"
	"reflect"
)

// Handler is the callable bound to a variant. Args holds one entry per declared
// parameter, in order; a variadic tail arrives as a single typed slice.
type Handler interface {
	Call(args []any) (any, error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(args []any) (any, error)

// Call implements Handler.
func (f HandlerFunc) Call(args []any) (any, error) {
	return f(args)
}

// signatureHandler is implemented by handlers whose parameter types are known up front,
// so the builder can check them against the declared parameters.
type signatureHandler interface {
	Handler
	signature() reflect.Type
}

var errorType = reflect.TypeFor[error]()

// funcHandler calls an arbitrary Go function through reflection.
type funcHandler struct {
	fn  reflect.Value
	typ reflect.Type
}

// Func adapts any Go function to Handler. Supported result shapes are (), (T),
// (error) and (T, error). A Go variadic function receives the collected tail through
// CallSlice. Func panics when fn is not a function, like reflect does for bad input.
func Func(fn any) Handler {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic(fmt.Sprintf("definition.Func: %T is not a function", fn))
	}
	return &funcHandler{fn: v, typ: v.Type()}
}

func (h *funcHandler) signature() reflect.Type { return h.typ }

// Call implements Handler.
func (h *funcHandler) Call(args []any) (any, error) {
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		want := h.typ.In(i)
		if arg == nil {
			in[i] = reflect.Zero(want)
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}

	var out []reflect.Value
	if h.typ.IsVariadic() {
		out = h.fn.CallSlice(in)
	} else {
		out = h.fn.Call(in)
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if h.typ.Out(0) == errorType {
			err, _ := out[0].Interface().(error)
			return nil, err
		}
		return out[0].Interface(), nil
	default:
		err, _ := out[len(out)-1].Interface().(error)
		return out[0].Interface(), err
	}
}

// checkSignature verifies that fnType accepts the declared parameters in order.
func checkSignature(fnType reflect.Type, params []*Parameter) error {
	if fnType.NumIn() != len(params) {
		return fmt.Errorf("handler takes %d parameters, %d declared", fnType.NumIn(), len(params))
	}
	for i, p := range params {
		in := fnType.In(i)
		switch {
		case p.IsSender():
			// The sender's dynamic type is checked at dispatch time; the declared
			// type only has to fit the function.
			if !p.Type().AssignableTo(in) {
				return fmt.Errorf("sender parameter %q of type %s does not fit %s", p.Name(), p.Type(), in)
			}
		case !p.ArgType().AssignableTo(in):
			return fmt.Errorf("parameter %q of type %s does not fit %s", p.Name(), p.ArgType(), in)
		}
	}
	switch fnType.NumOut() {
	case 0, 1:
	case 2:
		if fnType.Out(1) != errorType {
			return fmt.Errorf("second result must be error, got %s", fnType.Out(1))
		}
	default:
		return fmt.Errorf("handler returns %d values, at most 2 supported", fnType.NumOut())
	}
	return nil
}
