// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for slashkit.
//
// Configuration file location: ~/.slashkit/config.toml, falling back to built-in
// defaults. Environment overrides are applied last.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/slashkit/internal/logger"
	"github.com/jeranaias/slashkit/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete slashkit configuration.
type Config struct {
	// Prefix is the command prefix, "/" by default.
	Prefix string `toml:"prefix"`

	Log      LogConfig      `toml:"log"`
	Cooldown CooldownConfig `toml:"cooldown"`
	Suggest  SuggestConfig  `toml:"suggest"`
	Shell    ShellConfig    `toml:"shell"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// File receives log output instead of stderr when set.
	File string `toml:"file"`
}

// Cooldown store kinds.
const (
	StoreMemory  = "memory"
	StoreSQLite  = "sqlite"
	StoreLimiter = "limiter"
)

// CooldownConfig selects how command cooldowns are tracked.
type CooldownConfig struct {
	// Store is "memory", "sqlite" or "limiter".
	Store string `toml:"store"`
	// Path is the sqlite database file (sqlite store only).
	Path string `toml:"path"`
	// Burst is the number of uses allowed back to back (limiter store only).
	Burst int `toml:"burst"`
}

// SuggestConfig contains suggestion engine settings.
type SuggestConfig struct {
	// MaxResults caps the number of suggestions; 0 means unlimited.
	MaxResults int `toml:"max_results"`
}

// ShellConfig contains interactive shell settings.
type ShellConfig struct {
	HistoryFile string `toml:"history_file"`
	Prompt      string `toml:"prompt"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Prefix: "/",
		Log: LogConfig{
			Level: "info",
		},
		Cooldown: CooldownConfig{
			Store: StoreMemory,
			Burst: 1,
		},
		Suggest: SuggestConfig{
			MaxResults: 20,
		},
		Shell: ShellConfig{
			Prompt: "slashkit> ",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the slashkit configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".slashkit"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads ~/.slashkit/config.toml when it exists and falls back to defaults
// otherwise. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific TOML file with full validation.
// Keys missing from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SetDefaults fills values that depend on the environment, such as file paths under
// the config directory.
func (c *Config) SetDefaults() {
	dir, err := ConfigDir()
	if err != nil {
		return
	}
	if c.Cooldown.Store == StoreSQLite && c.Cooldown.Path == "" {
		c.Cooldown.Path = filepath.Join(dir, "cooldowns.db")
	}
	if c.Shell.HistoryFile == "" {
		c.Shell.HistoryFile = filepath.Join(dir, "history")
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to ~/.slashkit/config.toml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes cfg as TOML to path with 0600 permissions. The write is atomic.
func SaveTo(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# slashkit configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns every problem found as
// ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Prefix == "" {
		errs = append(errs, ValidationError{Field: "prefix", Message: "cannot be empty"})
	} else if strings.IndexFunc(c.Prefix, unicode.IsSpace) >= 0 {
		errs = append(errs, ValidationError{Field: "prefix", Message: fmt.Sprintf("'%s' cannot contain whitespace", c.Prefix)})
	}

	if c.Log.Level != "" {
		if _, err := logger.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, ValidationError{
				Field:   "log.level",
				Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
			})
		}
	}

	switch c.Cooldown.Store {
	case StoreMemory, StoreLimiter:
	case StoreSQLite:
		if c.Cooldown.Path == "" {
			errs = append(errs, ValidationError{Field: "cooldown.path", Message: "required for the sqlite store"})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "cooldown.store",
			Message: fmt.Sprintf("invalid store '%s', must be one of: memory, sqlite, limiter", c.Cooldown.Store),
		})
	}
	if c.Cooldown.Burst < 1 {
		errs = append(errs, ValidationError{Field: "cooldown.burst", Message: fmt.Sprintf("must be at least 1, got %d", c.Cooldown.Burst)})
	}

	if c.Suggest.MaxResults < 0 {
		errs = append(errs, ValidationError{Field: "suggest.max_results", Message: "cannot be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - SLASHKIT_PREFIX: overrides prefix
//   - SLASHKIT_LOG_LEVEL: overrides log.level
//   - SLASHKIT_COOLDOWN_STORE: overrides cooldown.store
//   - SLASHKIT_COOLDOWN_PATH: overrides cooldown.path
func (c *Config) ApplyEnvOverrides() {
	if prefix := os.Getenv("SLASHKIT_PREFIX"); prefix != "" {
		c.Prefix = prefix
	}
	if level := os.Getenv("SLASHKIT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if store := os.Getenv("SLASHKIT_COOLDOWN_STORE"); store != "" {
		c.Cooldown.Store = strings.ToLower(store)
	}
	if path := os.Getenv("SLASHKIT_COOLDOWN_PATH"); path != "" {
		c.Cooldown.Path = path
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "cooldown.store").
func (c *Config) Get(key string) (any, error) {
	field, err := c.field(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are converted to
// the field's type. The result is not validated; call Validate afterwards.
func (c *Config) Set(key string, value any) error {
	field, err := c.field(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// field walks the struct by toml tag.
func (c *Config) field(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") == strings.ToLower(name) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// setFieldValue sets a reflect.Value from a value with type conversion.
func setFieldValue(field reflect.Value, value any) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int:
			intVal, err := strconv.Atoi(strVal)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(int64(intVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.IsValid() && val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// Keys returns all configuration keys in dot notation.
func Keys() []string {
	var keys []string
	var walk func(prefix string, t reflect.Type)
	walk = func(prefix string, t reflect.Type) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := prefix + f.Tag.Get("toml")
			if f.Type.Kind() == reflect.Struct {
				walk(name+".", f.Type)
				continue
			}
			keys = append(keys, name)
		}
	}
	walk("", reflect.TypeFor[Config]())
	return keys
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
