// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package definition holds the immutable command tree that the dispatcher routes into.
package definition

import (
	"reflect"
)

// =============================================================================
// MARKERS
// =============================================================================

// Marker is a declarative tag attached to a parameter. Structural markers (Sender,
// Variadic, UseConverter, UseSource) change how the parameter is bound; any other
// marker is a constraint that a validator registered for its type enforces.
type Marker interface {
	MarkerName() string
}

// Sender marks the parameter that receives the invoking sender instead of a token.
type Sender struct{}

// MarkerName implements Marker.
func (Sender) MarkerName() string { return "sender" }

// Variadic marks a trailing parameter that collects every remaining token.
// Min is the number of tokens the tail needs at least.
type Variadic struct {
	Min int
}

// MarkerName implements Marker.
func (Variadic) MarkerName() string { return "variadic" }

// UseConverter selects a named converter instead of the default for the declared type.
type UseConverter struct {
	Name string
}

// MarkerName implements Marker.
func (UseConverter) MarkerName() string { return "converter" }

// UseSource selects a named suggestion source instead of the default for the declared type.
type UseSource struct {
	Name string
}

// MarkerName implements Marker.
func (UseSource) MarkerName() string { return "source" }

// =============================================================================
// PARAMETER
// =============================================================================

// Parameter describes one declared handler parameter.
type Parameter struct {
	name    string
	typ     reflect.Type
	markers []Marker
}

// Param declares a parameter of type T.
func Param[T any](name string, markers ...Marker) *Parameter {
	return ParamOf(name, reflect.TypeFor[T](), markers...)
}

// ParamOf declares a parameter with an explicit reflect.Type.
func ParamOf(name string, typ reflect.Type, markers ...Marker) *Parameter {
	return &Parameter{
		name:    name,
		typ:     typ,
		markers: append([]Marker(nil), markers...),
	}
}

// SenderParam declares the sender-injection parameter of type T.
func SenderParam[T any](name string, markers ...Marker) *Parameter {
	return Param[T](name, append([]Marker{Sender{}}, markers...)...)
}

// Rest declares a variadic tail whose elements are of type T and which needs at least
// min tokens.
func Rest[T any](name string, min int, markers ...Marker) *Parameter {
	return Param[T](name, append([]Marker{Variadic{Min: min}}, markers...)...)
}

// Name returns the parameter name used in usage strings.
func (p *Parameter) Name() string { return p.name }

// Type returns the declared type. For a variadic parameter this is the element type.
func (p *Parameter) Type() reflect.Type { return p.typ }

// Markers returns a copy of the parameter's markers in declaration order.
func (p *Parameter) Markers() []Marker {
	return append([]Marker(nil), p.markers...)
}

// IsSender reports whether the parameter receives the sender.
func (p *Parameter) IsSender() bool {
	_, ok := FindMarker[Sender](p)
	return ok
}

// Variadic returns the variadic marker, if any.
func (p *Parameter) Variadic() (Variadic, bool) {
	return FindMarker[Variadic](p)
}

// IsVariadic reports whether the parameter collects the remaining tokens.
func (p *Parameter) IsVariadic() bool {
	_, ok := p.Variadic()
	return ok
}

// ConverterName returns the explicit converter reference, if any.
func (p *Parameter) ConverterName() (string, bool) {
	m, ok := FindMarker[UseConverter](p)
	return m.Name, ok
}

// SourceName returns the explicit suggestion source reference, if any.
func (p *Parameter) SourceName() (string, bool) {
	m, ok := FindMarker[UseSource](p)
	return m.Name, ok
}

// Constraints returns the markers that are not structural, in declaration order.
func (p *Parameter) Constraints() []Marker {
	var out []Marker
	for _, m := range p.markers {
		switch m.(type) {
		case Sender, Variadic, UseConverter, UseSource:
			continue
		}
		out = append(out, m)
	}
	return out
}

// ArgType is the type of the bound argument: the declared type, or a slice of it for a
// variadic parameter.
func (p *Parameter) ArgType() reflect.Type {
	if p.IsVariadic() {
		return reflect.SliceOf(p.typ)
	}
	return p.typ
}

// FindMarker returns the first marker of type M attached to p.
func FindMarker[M Marker](p *Parameter) (M, bool) {
	for _, m := range p.markers {
		if typed, ok := m.(M); ok {
			return typed, true
		}
	}
	var zero M
	return zero, false
}
