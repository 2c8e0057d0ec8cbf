// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package convert provides the built-in default converters.
package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/slashkit/internal/registry"
)

// =============================================================================
// CONVERTERS
// =============================================================================

// Int parses a base-10 int.
func Int(token string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", token)
	}
	return v, nil
}

// Int64 parses a base-10 int64.
func Int64(token string) (int64, error) {
	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", token)
	}
	return v, nil
}

// Uint parses a base-10 non-negative integer.
func Uint(token string) (uint, error) {
	v, err := strconv.ParseUint(token, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%q is not a non-negative whole number", token)
	}
	return uint(v), nil
}

// Float64 parses a decimal number. NaN and infinities are rejected.
func Float64(token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", token)
	}
	return v, nil
}

// Bool accepts true/false, yes/no, on/off and 1/0, ignoring case.
func Bool(token string) (bool, error) {
	switch strings.ToLower(token) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not true or false", token)
}

// maxSeconds is the largest bare second count a time.Duration can hold.
const maxSeconds = int64(math.MaxInt64 / time.Second)

// Duration parses Go duration syntax ("1m30s"). A bare integer is read as seconds.
func Duration(token string) (time.Duration, error) {
	if secs, err := strconv.ParseInt(token, 10, 64); err == nil {
		if secs > maxSeconds || secs < -maxSeconds {
			return 0, fmt.Errorf("%q is not a duration", token)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(token)
	if err != nil {
		return 0, fmt.Errorf("%q is not a duration", token)
	}
	return d, nil
}

// UUID parses a UUID in any form accepted by github.com/google/uuid.
func UUID(token string) (uuid.UUID, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q is not a UUID", token)
	}
	return id, nil
}

// Lower is a named converter that lower-cases a string token.
func Lower(token string) (string, error) {
	return strings.ToLower(token), nil
}

// =============================================================================
// REGISTRATION
// =============================================================================

// LowerName is the name Lower is registered under.
const LowerName = "lower"

// RegisterDefaults installs the built-in converters into types.
func RegisterDefaults(types *registry.Types) error {
	defaults := []registry.Converter{
		registry.NewConverter(Int),
		registry.NewConverter(Int64),
		registry.NewConverter(Uint),
		registry.NewConverter(Float64),
		registry.NewConverter(Bool),
		registry.NewConverter(Duration),
		registry.NewConverter(UUID),
	}
	for _, c := range defaults {
		if err := types.RegisterConverter(c); err != nil {
			return fmt.Errorf("register %s converter: %w", c.Type, err)
		}
	}
	if err := types.RegisterNamedConverter(LowerName, registry.NewConverter(Lower)); err != nil {
		return fmt.Errorf("register %s converter: %w", LowerName, err)
	}
	return nil
}
