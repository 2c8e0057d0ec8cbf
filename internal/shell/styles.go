// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import "github.com/charmbracelet/lipgloss"

var (
	// titleStyle is used for the welcome banner
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	// resultStyle is used for handler output
	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Off-white

	// chatStyle is used for plain text echoed as chat
	chatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Light gray

	// errorStyle is used for failures the sender caused
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	// warningStyle is used for cooldowns and guards
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Yellow/Orange

	// dimStyle is used for hints and usage lines
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")) // Dim gray
)
