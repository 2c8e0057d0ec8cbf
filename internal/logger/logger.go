// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger configures structured logging for slashkit components.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	mu     sync.RWMutex
	output io.Writer = os.Stderr
	closer io.Closer

	// Logger is the process-wide logger used by the shell and as the parent of the
	// component loggers.
	Logger = newLogger(os.Stderr, log.InfoLevel)
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetTimeFormat("")
	l.SetLevel(level)
	return l
}

// Configure sets the level and destination. An empty level falls back to
// SLASHKIT_LOG_LEVEL, then info. An empty file logs to stderr.
func Configure(level, file string) error {
	if level == "" {
		level = os.Getenv("SLASHKIT_LOG_LEVEL")
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	var c io.Closer
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w, c = f, f
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	output, closer = w, c
	Logger = newLogger(w, lvl)
	return nil
}

// SetLevel changes the level of the global logger.
func SetLevel(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	mu.RLock()
	defer mu.RUnlock()
	Logger.SetLevel(lvl)
	return nil
}

// ParseLevel converts a level name. Empty means info.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "fatal":
		return log.FatalLevel, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

// Discard returns a logger that drops everything. Used by tests and by callers that
// want silent components.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// NewStyledLogger returns a component logger with a prefix and colored levels. It
// writes to the configured destination at the global level.
func NewStyledLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = levelStyle("DEBUG", "240")
	styles.Levels[log.InfoLevel] = levelStyle("INFO", "33")
	styles.Levels[log.WarnLevel] = levelStyle("WARN", "214")
	styles.Levels[log.ErrorLevel] = levelStyle("ERROR", "196")
	styles.Levels[log.FatalLevel] = levelStyle("FATAL", "88")

	styles.Keys["state"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	styles.Keys["command"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styles.Keys["kind"] = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Values["state"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	mu.RLock()
	w, level := output, Logger.GetLevel()
	mu.RUnlock()

	l := log.NewWithOptions(w, log.Options{Prefix: prefix + " "})
	l.SetStyles(styles)
	l.SetLevel(level)
	return l
}

func levelStyle(label, bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(label).
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color("15"))
}
