// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/slashkit/internal/commands"
	"github.com/jeranaias/slashkit/internal/config"
	"github.com/jeranaias/slashkit/internal/convert"
	"github.com/jeranaias/slashkit/internal/dispatch"
	"github.com/jeranaias/slashkit/internal/gate"
	"github.com/jeranaias/slashkit/internal/help"
	"github.com/jeranaias/slashkit/internal/logger"
	"github.com/jeranaias/slashkit/internal/registry"
	"github.com/jeranaias/slashkit/internal/resolver"
	"github.com/jeranaias/slashkit/internal/validate"
)

// Options configures a Shell.
type Options struct {
	// Config is required.
	Config *config.Config

	// ConfigPath is where /config save writes and what the watcher follows.
	// Empty means ~/.slashkit/config.toml.
	ConfigPath string

	// Out receives command output. Default os.Stdout.
	Out io.Writer

	// Logger defaults to a styled "slashkit" logger.
	Logger *log.Logger

	// Players are joined to the world at start.
	Players []*commands.Player
}

// Shell owns one command system and the sender typing into it.
type Shell struct {
	cfg        *config.Config
	configPath string
	out        io.Writer
	logger     *log.Logger

	world      *commands.World
	registry   *registry.Registry
	dispatcher *dispatch.Dispatcher
	permission gate.Permission
	closers    []io.Closer

	sender    any
	lastInput string
}

// quitSignal is returned by the quit command.
type quitSignal struct{}

// New wires the registries, the built-in and shell commands, the cooldown store and
// the dispatcher from opts.Config.
func New(opts Options) (*Shell, error) {
	if opts.Config == nil {
		return nil, errors.New("shell needs a config")
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewStyledLogger("slashkit")
	}
	if opts.ConfigPath == "" {
		path, err := config.ConfigPath()
		if err != nil {
			return nil, err
		}
		opts.ConfigPath = path
	}

	s := &Shell{
		cfg:        opts.Config.Clone(),
		configPath: opts.ConfigPath,
		out:        opts.Out,
		logger:     opts.Logger,
		world:      commands.NewWorld(),
		sender:     commands.Console{},
	}
	for _, p := range opts.Players {
		if err := s.world.Join(p); err != nil {
			return nil, err
		}
	}

	types := registry.NewTypes()
	if err := convert.RegisterDefaults(types); err != nil {
		return nil, err
	}
	if err := validate.RegisterDefaults(types); err != nil {
		return nil, err
	}
	s.registry = registry.New(types)

	s.permission = gate.NodePermissions()
	err := commands.Register(commands.Env{
		World:      s.world,
		Registry:   s.registry,
		Prefix:     s.cfg.Prefix,
		Permission: s.permission,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}
	if err := s.registerBuiltins(); err != nil {
		return nil, fmt.Errorf("failed to register shell commands: %w", err)
	}

	cd, closer, err := newCooldown(s.cfg.Cooldown, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open cooldown store: %w", err)
	}
	if closer != nil {
		s.closers = append(s.closers, closer)
	}

	dopts := []dispatch.Option{
		dispatch.WithPrefix(s.cfg.Prefix),
		dispatch.WithPermission(s.permission),
		dispatch.WithCooldown(cd),
		dispatch.WithMaxSuggestions(s.cfg.Suggest.MaxResults),
		dispatch.WithLogger(s.logger),
	}
	dopts = append(dopts, s.failureHandlers()...)
	s.dispatcher, err = dispatch.New(s.registry, dopts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the cooldown store.
func (s *Shell) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Sender returns who is currently typing.
func (s *Shell) Sender() any { return s.sender }

// SwitchSender makes the console or the named online player the sender of
// subsequent lines.
func (s *Shell) SwitchSender(name string) error {
	if strings.EqualFold(name, commands.Console{}.String()) {
		s.sender = commands.Console{}
		return nil
	}
	p, ok := s.world.Player(name)
	if !ok {
		return fmt.Errorf("no player named %q is online", name)
	}
	s.sender = p
	return nil
}

// HelpMarkdown documents every registered command.
func (s *Shell) HelpMarkdown() string {
	return help.Markdown(s.cfg.Prefix, s.registry.Commands())
}

// World returns the demo world.
func (s *Shell) World() *commands.World { return s.world }

// Config returns the live configuration.
func (s *Shell) Config() *config.Config { return s.cfg }

// Execute dispatches one line and prints the result. It reports whether the shell
// should exit.
func (s *Shell) Execute(input string) (quit bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	s.lastInput = input

	out, err := s.dispatcher.Invoke(s.sender, input)
	if err != nil {
		s.printf(errorStyle, "[Error] %v", err)
		return false
	}
	switch v := out.Value.(type) {
	case quitSignal:
		return true
	case string:
		if v != "" {
			fmt.Fprintln(s.out, resultStyle.Render(v))
		}
	case nil:
	default:
		fmt.Fprintln(s.out, resultStyle.Render(fmt.Sprint(v)))
	}
	return false
}

// Completions returns full replacement lines for the line being edited, best match
// first.
func (s *Shell) Completions(line string) []string {
	head := line
	if !strings.HasSuffix(line, " ") {
		rest, _ := resolver.Strip(line, s.cfg.Prefix)
		if tokens := resolver.Tokenize(rest); len(tokens) > 0 {
			head = strings.TrimSuffix(line, tokens[len(tokens)-1])
		}
	}

	comps := s.dispatcher.Complete(s.sender, line)
	out := make([]string, len(comps))
	for i, c := range comps {
		out[i] = head + c.Value
	}
	return out
}

func (s *Shell) printf(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(s.out, style.Render(fmt.Sprintf(format, args...)))
}

func (s *Shell) prompt() string {
	return fmt.Sprintf("[%v] %s", s.sender, s.cfg.Shell.Prompt)
}
