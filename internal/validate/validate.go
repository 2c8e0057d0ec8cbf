// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate provides the built-in constraint markers and their validators.
package validate

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/failure"
	"github.com/jeranaias/slashkit/internal/registry"
)

// =============================================================================
// RANGE
// =============================================================================

// Range constrains a numeric value. Bounds are inclusive unless the matching
// Exclusive flag is set.
type Range struct {
	Min          float64
	Max          float64
	ExclusiveMin bool
	ExclusiveMax bool
}

// Between returns an inclusive range.
func Between(min, max float64) Range {
	return Range{Min: min, Max: max}
}

// AtLeast returns a range with no upper bound.
func AtLeast(min float64) Range {
	return Range{Min: min, Max: math.Inf(1)}
}

// AtMost returns a range with no lower bound.
func AtMost(max float64) Range {
	return Range{Min: math.Inf(-1), Max: max}
}

// MarkerName implements definition.Marker.
func (Range) MarkerName() string { return "range" }

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	if v > r.Min && v < r.Max {
		return true
	}
	return (!r.ExclusiveMin && v == r.Min) || (!r.ExclusiveMax && v == r.Max)
}

// String renders the range in interval notation, e.g. "[1, 64]" or "(0, 1]".
func (r Range) String() string {
	open, closing := '[', ']'
	if r.ExclusiveMin {
		open = '('
	}
	if r.ExclusiveMax {
		closing = ')'
	}
	return fmt.Sprintf("%c%s, %s%c", open, formatBound(r.Min), formatBound(r.Max), closing)
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func checkRange(_ any, value any, r Range) error {
	v, ok := toFloat(value)
	if !ok {
		return failure.Internal("range constraint cannot check %T", value)
	}
	if !r.Contains(v) {
		return fmt.Errorf("must be in %s", r)
	}
	return nil
}

// toFloat widens any integer or floating kind, including named types such as
// time.Duration.
func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// =============================================================================
// LENGTH
// =============================================================================

// Length constrains the rune count of a string. A zero Max means no upper bound.
type Length struct {
	Min int
	Max int
}

// MarkerName implements definition.Marker.
func (Length) MarkerName() string { return "length" }

func checkLength(_ any, value string, l Length) error {
	n := utf8.RuneCountInString(value)
	if n < l.Min {
		return fmt.Errorf("must be at least %d characters", l.Min)
	}
	if l.Max > 0 && n > l.Max {
		return fmt.Errorf("must be at most %d characters", l.Max)
	}
	return nil
}

// =============================================================================
// PATTERN
// =============================================================================

// Pattern requires the whole string to match a regular expression.
type Pattern struct {
	Expr string
}

// MarkerName implements definition.Marker.
func (Pattern) MarkerName() string { return "pattern" }

var patternCache sync.Map // string -> *regexp.Regexp

func compilePattern(expr string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(expr); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, err
	}
	patternCache.Store(expr, re)
	return re, nil
}

func checkPattern(_ any, value string, p Pattern) error {
	re, err := compilePattern(p.Expr)
	if err != nil {
		return failure.Internal("pattern %q does not compile: %v", p.Expr, err)
	}
	if !re.MatchString(value) {
		return fmt.Errorf("must match %s", p.Expr)
	}
	return nil
}

// =============================================================================
// ONE OF
// =============================================================================

// OneOf restricts a string to a fixed set of values.
type OneOf struct {
	Values     []string
	IgnoreCase bool
}

// MarkerName implements definition.Marker.
func (OneOf) MarkerName() string { return "one_of" }

func checkOneOf(_ any, value string, o OneOf) error {
	for _, allowed := range o.Values {
		if value == allowed || (o.IgnoreCase && strings.EqualFold(value, allowed)) {
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(o.Values, ", "))
}

// oneOfSource offers the allowed values of a OneOf constraint.
func oneOfSource(_ any, _ string, p *definition.Parameter) []string {
	if o, ok := definition.FindMarker[OneOf](p); ok {
		return append([]string(nil), o.Values...)
	}
	return nil
}

func boolSource(any, string, *definition.Parameter) []string {
	return []string{"true", "false"}
}

// =============================================================================
// REGISTRATION
// =============================================================================

// OneOfSourceName is the named suggestion source that lists a OneOf marker's values.
const OneOfSourceName = "one_of"

// RegisterDefaults installs the built-in validators, the bool suggestion source and the
// one_of source into types.
func RegisterDefaults(types *registry.Types) error {
	validators := []struct {
		marker definition.Marker
		fn     registry.Validator
	}{
		{Range{}, registry.NewValidator(checkRange)},
		{Length{}, registry.NewValidator(checkLength)},
		{Pattern{}, registry.NewValidator(checkPattern)},
		{OneOf{}, registry.NewValidator(checkOneOf)},
	}
	for _, v := range validators {
		if err := types.RegisterValidator(v.marker, v.fn); err != nil {
			return fmt.Errorf("register %s validator: %w", v.marker.MarkerName(), err)
		}
	}
	if err := types.RegisterSource(reflect.TypeFor[bool](), boolSource); err != nil {
		return fmt.Errorf("register bool source: %w", err)
	}
	if err := types.RegisterNamedSource(OneOfSourceName, oneOfSource); err != nil {
		return fmt.Errorf("register %s source: %w", OneOfSourceName, err)
	}
	return nil
}
