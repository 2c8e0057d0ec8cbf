// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/slashkit/internal/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SLASHKIT_PREFIX", "SLASHKIT_LOG_LEVEL", "SLASHKIT_COOLDOWN_STORE", "SLASHKIT_COOLDOWN_PATH"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/", cfg.Prefix)
	assert.Equal(t, StoreMemory, cfg.Cooldown.Store)
}

func TestLoadFromPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
prefix = "!"

[log]
level = "debug"

[cooldown]
store = "sqlite"
path = "/tmp/cd.db"

[suggest]
max_results = 5
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, StoreSQLite, cfg.Cooldown.Store)
	assert.Equal(t, "/tmp/cd.db", cfg.Cooldown.Path)
	assert.Equal(t, 1, cfg.Cooldown.Burst, "missing keys keep defaults")
	assert.Equal(t, 5, cfg.Suggest.MaxResults)
	assert.Equal(t, "slashkit> ", cfg.Shell.Prompt)
}

func TestLoadFromPathErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "prefix = ", "failed to load config"},
		{"unknown key", "colour = \"red\"\n", "unknown config keys"},
		{"invalid value", "[cooldown]\nstore = \"redis\"\n", "cooldown.store"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			writeFile(t, path, tt.content)
			_, err := LoadFromPath(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := LoadFromPath(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestSQLiteStoreGetsDefaultPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[cooldown]\nstore = \"sqlite\"\n")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "cooldowns.db", filepath.Base(cfg.Cooldown.Path))
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SLASHKIT_PREFIX", "#")
	t.Setenv("SLASHKIT_LOG_LEVEL", "warn")
	t.Setenv("SLASHKIT_COOLDOWN_STORE", "SQLite")
	t.Setenv("SLASHKIT_COOLDOWN_PATH", "/var/lib/cd.db")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "#", cfg.Prefix)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, StoreSQLite, cfg.Cooldown.Store)
	assert.Equal(t, "/var/lib/cd.db", cfg.Cooldown.Path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{"empty prefix", func(c *Config) { c.Prefix = "" }, []string{"prefix"}},
		{"whitespace prefix", func(c *Config) { c.Prefix = "/ " }, []string{"prefix"}},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, []string{"log.level"}},
		{"sqlite without path", func(c *Config) { c.Cooldown.Store = StoreSQLite }, []string{"cooldown.path"}},
		{"zero burst", func(c *Config) { c.Cooldown.Burst = 0 }, []string{"cooldown.burst"}},
		{"negative results", func(c *Config) { c.Suggest.MaxResults = -1 }, []string{"suggest.max_results"}},
		{"several", func(c *Config) {
			c.Prefix = ""
			c.Cooldown.Store = "redis"
		}, []string{"prefix", "cooldown.store"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			var fields []string
			for _, e := range verrs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Prefix = "!"
	cfg.Cooldown.Store = StoreLimiter
	cfg.Cooldown.Burst = 3
	require.NoError(t, SaveTo(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if filepath.Separator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "!", loaded.Prefix)
	assert.Equal(t, StoreLimiter, loaded.Cooldown.Store)
	assert.Equal(t, 3, loaded.Cooldown.Burst)
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("cooldown.store")
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, v)

	require.NoError(t, cfg.Set("suggest.max_results", "7"))
	assert.Equal(t, 7, cfg.Suggest.MaxResults)
	require.NoError(t, cfg.Set("cooldown.burst", 4))
	assert.Equal(t, 4, cfg.Cooldown.Burst)
	require.NoError(t, cfg.Set("PREFIX", "!"))
	assert.Equal(t, "!", cfg.Prefix)

	tests := []struct {
		key   string
		value any
		want  string
	}{
		{"", "x", "empty key"},
		{"nope", "x", "unknown field: nope"},
		{"log.nope", "x", "unknown field: log.nope"},
		{"log", "x", "is a section"},
		{"prefix.x", "x", "is not a section"},
		{"suggest.max_results", "many", "invalid integer"},
		{"prefix", 3.5, "cannot assign"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := cfg.Set(tt.key, tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "prefix")
	assert.Contains(t, keys, "log.level")
	assert.Contains(t, keys, "cooldown.burst")
	assert.Contains(t, keys, "shell.history_file")
	for _, k := range keys {
		_, err := Default().Get(k)
		assert.NoError(t, err, k)
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Prefix = "!"
	assert.Equal(t, "/", cfg.Prefix)
}

func TestWatcherReloads(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "prefix = \"/\"\n")

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { changes <- c }, logger.Discard())
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	require.NoError(t, w.Start())
	defer w.Close()

	cfg := Default()
	cfg.Log.Level = "debug"
	require.NoError(t, SaveTo(cfg, path))

	select {
	case got := <-changes:
		assert.Equal(t, "debug", got.Log.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}
}

func TestWatcherSkipsInvalidFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "prefix = \"/\"\n")

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { changes <- c }, logger.Discard())
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	require.NoError(t, w.Start())
	defer w.Close()

	writeFile(t, path, "[cooldown]\nburst = 0\n")

	select {
	case <-changes:
		t.Fatal("invalid config was reported")
	case <-time.After(300 * time.Millisecond):
	}
}
