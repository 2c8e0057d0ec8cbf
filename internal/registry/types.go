// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry owns the type processors and the set of registered commands.
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/failure"
)

var stringType = reflect.TypeFor[string]()

// =============================================================================
// PROCESSOR TYPES
// =============================================================================

// Converter turns a raw token into a value of Type.
type Converter struct {
	Type    reflect.Type
	Convert func(token string) (any, error)
}

// NewConverter wraps a typed conversion function and records its output type.
func NewConverter[T any](fn func(token string) (T, error)) Converter {
	return Converter{
		Type: reflect.TypeFor[T](),
		Convert: func(token string) (any, error) {
			v, err := fn(token)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

// Validator checks a converted value against the marker it is registered for.
type Validator func(sender any, value any, marker definition.Marker) error

// NewValidator adapts a typed validator. A value that is not a V, or a marker that is
// not an M, is a registration mistake and reported as an internal dispatch failure.
func NewValidator[M definition.Marker, V any](fn func(sender any, value V, marker M) error) Validator {
	return func(sender any, value any, marker definition.Marker) error {
		m, ok := marker.(M)
		if !ok {
			return failure.Internal("validator for %T received marker %T", *new(M), marker)
		}
		v, ok := value.(V)
		if !ok {
			return failure.Internal("%s validator is not compatible with %T", marker.MarkerName(), value)
		}
		return fn(sender, v, m)
	}
}

// Source produces suggestions for a parameter given the partially typed token.
type Source func(sender any, partial string, param *definition.Parameter) []string

// =============================================================================
// TYPES REGISTRY
// =============================================================================

// Types maps declared types and explicit references to converters, validators and
// suggestion sources. It is owned by one dispatcher; there is no global instance.
type Types struct {
	mu           sync.RWMutex
	converters   map[reflect.Type]Converter
	named        map[string]Converter
	validators   map[reflect.Type]Validator
	sources      map[reflect.Type]Source
	namedSources map[string]Source
}

// NewTypes returns an empty registry.
func NewTypes() *Types {
	return &Types{
		converters:   make(map[reflect.Type]Converter),
		named:        make(map[string]Converter),
		validators:   make(map[reflect.Type]Validator),
		sources:      make(map[reflect.Type]Source),
		namedSources: make(map[string]Source),
	}
}

// RegisterConverter installs c as the default converter for c.Type, replacing any
// previous one.
func (t *Types) RegisterConverter(c Converter) error {
	if c.Type == nil || c.Convert == nil {
		return errors.New("converter needs a type and a function")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.converters[c.Type] = c
	return nil
}

// RegisterNamedConverter installs c under name for UseConverter references.
func (t *Types) RegisterNamedConverter(name string, c Converter) error {
	if name == "" {
		return errors.New("converter name cannot be empty")
	}
	if c.Type == nil || c.Convert == nil {
		return fmt.Errorf("converter %q needs a type and a function", name)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.named[name]; exists {
		return fmt.Errorf("converter %q already registered", name)
	}
	t.named[name] = c
	return nil
}

// RegisterValidator binds v to the dynamic type of marker.
func (t *Types) RegisterValidator(marker definition.Marker, v Validator) error {
	if marker == nil || v == nil {
		return errors.New("validator needs a marker and a function")
	}
	switch marker.(type) {
	case definition.Sender, definition.Variadic, definition.UseConverter, definition.UseSource:
		return fmt.Errorf("%s is a structural marker and cannot carry a validator", marker.MarkerName())
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.validators[reflect.TypeOf(marker)] = v
	return nil
}

// RegisterSource installs s as the default suggestion source for typ.
func (t *Types) RegisterSource(typ reflect.Type, s Source) error {
	if typ == nil || s == nil {
		return errors.New("source needs a type and a function")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sources[typ] = s
	return nil
}

// RegisterNamedSource installs s under name for UseSource references.
func (t *Types) RegisterNamedSource(name string, s Source) error {
	if name == "" || s == nil {
		return errors.New("source needs a name and a function")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.namedSources[name]; exists {
		return fmt.Errorf("source %q already registered", name)
	}
	t.namedSources[name] = s
	return nil
}

// Converter returns the default converter for typ.
func (t *Types) Converter(typ reflect.Type) (Converter, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.converters[typ]
	return c, ok
}

// NamedConverter returns the converter registered under name.
func (t *Types) NamedConverter(name string) (Converter, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.named[name]
	return c, ok
}

// Validator returns the validator bound to the marker's type.
func (t *Types) Validator(marker definition.Marker) (Validator, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.validators[reflect.TypeOf(marker)]
	return v, ok
}

// Source returns the default suggestion source for typ.
func (t *Types) Source(typ reflect.Type) (Source, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.sources[typ]
	return s, ok
}

// NamedSource returns the suggestion source registered under name.
func (t *Types) NamedSource(name string) (Source, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.namedSources[name]
	return s, ok
}

// =============================================================================
// RESOLUTION
// =============================================================================

// ResolveConverter picks the converter for p. An explicit UseConverter reference wins,
// then the default for the declared type. A string parameter without a converter is
// passed through unconverted. For a variadic parameter the element type is used.
func (t *Types) ResolveConverter(p *definition.Parameter) (conv Converter, passthrough bool, err error) {
	if name, ok := p.ConverterName(); ok {
		c, found := t.NamedConverter(name)
		if !found {
			return Converter{}, false, fmt.Errorf("converter %q is not registered", name)
		}
		if c.Type != p.Type() {
			return Converter{}, false, fmt.Errorf("converter %q produces %s, parameter %q is %s", name, c.Type, p.Name(), p.Type())
		}
		return c, false, nil
	}
	if c, found := t.Converter(p.Type()); found {
		return c, false, nil
	}
	if p.Type() == stringType {
		return Converter{}, true, nil
	}
	return Converter{}, false, fmt.Errorf("no converter registered for %s (parameter %q)", p.Type(), p.Name())
}

// ResolveSource picks the suggestion source for p: explicit reference first, then the
// default for the declared type.
func (t *Types) ResolveSource(p *definition.Parameter) (Source, bool) {
	if name, ok := p.SourceName(); ok {
		return t.NamedSource(name)
	}
	return t.Source(p.Type())
}
