// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/slashkit/internal/config"
	"github.com/jeranaias/slashkit/internal/logger"
)

// =============================================================================
// REPL
// =============================================================================

// Run reads lines until quit, Ctrl+C or Ctrl+D. History is loaded from and saved to
// the configured history file.
func (s *Shell) Run() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(s.Completions)

	s.loadHistory(line)
	defer s.saveHistory(line)

	if w := s.watchConfig(); w != nil {
		defer w.Close()
	}

	fmt.Fprintln(s.out, titleStyle.Render("slashkit"))
	s.printf(dimStyle, "Type %shelp for commands, %squit to leave. Anything else is chat.", s.cfg.Prefix, s.cfg.Prefix)

	for {
		input, err := line.Prompt(s.prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		if s.Execute(input) {
			return nil
		}
	}
}

func (s *Shell) loadHistory(line *liner.State) {
	path := s.cfg.Shell.HistoryFile
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := line.ReadHistory(f); err != nil {
		s.logger.Debug("failed to read history", "path", path, "error", err)
	}
}

// saveHistory writes history owner-readable only.
func (s *Shell) saveHistory(line *liner.State) {
	path := s.cfg.Shell.HistoryFile
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		s.logger.Warn("failed to create history directory", "error", err)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		s.logger.Warn("failed to save history", "path", path, "error", err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		s.logger.Warn("failed to save history", "path", path, "error", err)
	}
}

// watchConfig follows the config file while the shell runs. Only the log level is
// applied live.
func (s *Shell) watchConfig() *config.Watcher {
	if _, err := os.Stat(s.configPath); err != nil {
		return nil
	}
	prefix := s.cfg.Prefix
	w, err := config.NewWatcher(s.configPath, func(cfg *config.Config) {
		if lvl, err := logger.ParseLevel(cfg.Log.Level); err == nil {
			s.logger.SetLevel(lvl)
			logger.Logger.SetLevel(lvl)
		}
		if cfg.Prefix != prefix {
			s.logger.Warn("prefix change applies after restart", "prefix", cfg.Prefix)
		}
		s.logger.Info("config reloaded", "path", s.configPath)
	}, s.logger)
	if err != nil {
		s.logger.Warn("config watcher unavailable", "error", err)
		return nil
	}
	if err := w.Start(); err != nil {
		s.logger.Warn("config watcher unavailable", "error", err)
		w.Close()
		return nil
	}
	return w
}
