// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"strings"
	"time"

	"github.com/jeranaias/slashkit/internal/cooldown"
	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/dispatch"
	"github.com/jeranaias/slashkit/internal/failure"
	"github.com/jeranaias/slashkit/internal/gate"
	"github.com/jeranaias/slashkit/internal/help"
)

// failureHandlers maps every failure kind to the message the sender sees.
func (s *Shell) failureHandlers() []dispatch.Option {
	handlers := map[failure.Kind]dispatch.FailureHandler{
		failure.KindPlainTextInput:         s.onPlainText,
		failure.KindCommandNotFound:        s.onCommandNotFound,
		failure.KindSubcommandNotFound:     s.onUsage,
		failure.KindIncorrectArgumentCount: s.onUsage,
		failure.KindArgumentParse:          s.onInvalidArgument,
		failure.KindArgumentValidation:     s.onInvalidArgument,
		failure.KindSenderTypeMismatch:     s.onSenderMismatch,
		failure.KindPermissionDenied:       s.onPermissionDenied,
		failure.KindBeforeGuardFailed:      s.onGuardFailed,
		failure.KindCommandCooldownActive:  s.onCooldown,
		failure.KindInternalDispatch:       s.onInternal,
	}
	opts := make([]dispatch.Option, 0, len(handlers))
	for _, kind := range failure.Kinds() {
		if h, ok := handlers[kind]; ok {
			opts = append(opts, dispatch.WithFailureHandler(kind, h))
		}
	}
	return opts
}

// Text without the prefix is chat.
func (s *Shell) onPlainText(_ *failure.Error, sender any) {
	s.printf(chatStyle, "<%v> %s", sender, s.lastInput)
}

func (s *Shell) onCommandNotFound(f *failure.Error, _ any) {
	name := ""
	if len(f.Tokens) > 0 {
		name = f.Tokens[0]
	}
	s.printf(errorStyle, "Unknown command %s%s. Type %shelp for a list.", s.cfg.Prefix, name, s.cfg.Prefix)
}

// onUsage prints the usage lines the sender is allowed to use, preferring the
// overloads that were rejected for arity.
func (s *Shell) onUsage(f *failure.Error, sender any) {
	var lines []string
	for _, v := range f.Rejected {
		if gate.Check(s.permission, sender, v.Node(), v) == nil {
			lines = append(lines, help.Usage(s.cfg.Prefix, v))
		}
	}
	if len(lines) == 0 && f.Command != nil {
		for _, e := range help.Entries(s.cfg.Prefix, f.Command, s.permission, sender) {
			lines = append(lines, e.Usage)
		}
	}
	if len(lines) == 0 {
		s.printf(errorStyle, "Invalid usage.")
		return
	}
	s.printf(warningStyle, "Usage:")
	for _, l := range lines {
		s.printf(dimStyle, "  %s", l)
	}
}

func (s *Shell) onInvalidArgument(f *failure.Error, _ any) {
	reason := f.Message
	if f.Cause != nil {
		reason = f.Cause.Error()
	}
	if f.Parameter != nil {
		s.printf(errorStyle, "Invalid %s: %s", f.Parameter.Name(), reason)
		return
	}
	s.printf(errorStyle, "Invalid argument: %s", reason)
}

func (s *Shell) onSenderMismatch(_ *failure.Error, sender any) {
	s.printf(errorStyle, "%v cannot use that command.", sender)
}

func (s *Shell) onPermissionDenied(_ *failure.Error, _ any) {
	s.printf(errorStyle, "You do not have permission to do that.")
}

func (s *Shell) onGuardFailed(f *failure.Error, _ any) {
	s.printf(errorStyle, "You cannot do that right now (%s).", strings.ReplaceAll(f.Guard, "_", " "))
}

func (s *Shell) onCooldown(f *failure.Error, _ any) {
	cmd := s.cfg.Prefix + commandPath(f.Command)
	if f.Remaining == cooldown.Forever {
		s.printf(warningStyle, "You can only use %s once.", cmd)
		return
	}
	wait := f.Remaining.Round(time.Second)
	if wait < time.Second {
		wait = time.Second
	}
	s.printf(warningStyle, "Wait %s before using %s again.", wait, cmd)
}

func (s *Shell) onInternal(f *failure.Error, _ any) {
	s.logger.Error("dispatch failed", "input", s.lastInput, "error", f)
	s.printf(errorStyle, "Something went wrong running that command.")
}

func commandPath(n *definition.Node) string {
	if n == nil {
		return ""
	}
	return n.Path()
}
