// slashkit - an overloaded slash-command dispatcher with an interactive demo shell.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/slashkit/internal/commands"
	"github.com/jeranaias/slashkit/internal/config"
	"github.com/jeranaias/slashkit/internal/help"
	"github.com/jeranaias/slashkit/internal/logger"
	"github.com/jeranaias/slashkit/internal/shell"
)

// Version information (set at build time)
var Version = "0.1.0"

var (
	configPath string
	logLevel   string
	logFile    string
	prefix     string
	senderName string
)

var rootCmd = &cobra.Command{
	Use:   "slashkit",
	Short: "Interactive slash-command shell",
	Long: `slashkit runs a small game-style command set behind a line editor.
Lines starting with the prefix are dispatched as commands; anything else is chat.`,
	SilenceUsage: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		sh, err := openShell()
		if err != nil {
			return err
		}
		defer sh.Close()
		return sh.Run()
	},
}

var runCmd = &cobra.Command{
	Use:   "run [line...]",
	Short: "Execute lines without the line editor",
	Long:  `Execute each argument as one input line. With no arguments, lines are read from stdin.`,
	RunE: func(_ *cobra.Command, args []string) error {
		sh, err := openShell()
		if err != nil {
			return err
		}
		defer sh.Close()

		if len(args) > 0 {
			for _, line := range args {
				if sh.Execute(line) {
					return nil
				}
			}
			return nil
		}
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if sh.Execute(scanner.Text()) {
				return nil
			}
		}
		return scanner.Err()
	},
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Print the command reference",
	RunE: func(_ *cobra.Command, _ []string) error {
		sh, err := openShell()
		if err != nil {
			return err
		}
		defer sh.Close()
		fmt.Print(help.Render(sh.HelpMarkdown(), 80))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("slashkit v%s\n", Version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file [default: ~/.slashkit/config.toml]")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "Command prefix")
	rootCmd.PersistentFlags().StringVar(&senderName, "as", "", "Start typing as this player")

	rootCmd.AddCommand(runCmd, commandsCmd, versionCmd)
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if prefix != "" {
		cfg.Prefix = prefix
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openShell() (*shell.Shell, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Configure(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, err
	}

	sh, err := shell.New(shell.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Players:    seedPlayers(),
	})
	if err != nil {
		return nil, err
	}
	if senderName != "" {
		if err := sh.SwitchSender(senderName); err != nil {
			sh.Close()
			return nil, err
		}
	}
	return sh, nil
}

// seedPlayers returns an operator and a player with the everyday permissions.
func seedPlayers() []*commands.Player {
	return []*commands.Player{
		commands.NewPlayer("steve", "*"),
		commands.NewPlayer("alex",
			commands.PermGive,
			commands.PermHeal,
			commands.PermTeleport,
			commands.PermKit,
		),
	}
}
