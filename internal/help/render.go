// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/slashkit/internal/definition"
	"github.com/jeranaias/slashkit/internal/util"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	usageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	descStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
)

// =============================================================================
// LISTING
// =============================================================================

// Listing renders entries as an aligned two-column table no wider than width. Column
// widths count display cells, so wide runes line up.
func Listing(title string, entries []Entry, width int) string {
	if width <= 0 {
		width = 80
	}

	usageWidth := 0
	for _, e := range entries {
		if w := util.StringWidth(e.Usage); w > usageWidth {
			usageWidth = w
		}
	}
	if limit := width / 2; usageWidth > limit {
		usageWidth = limit
	}
	descWidth := width - usageWidth - 3

	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteByte('\n')
	}
	for _, e := range entries {
		usage := util.PadRight(util.TruncateWidth(e.Usage, usageWidth), usageWidth)
		b.WriteString("  ")
		b.WriteString(usageStyle.Render(usage))
		if e.Description != "" && descWidth > 0 {
			b.WriteByte(' ')
			b.WriteString(descStyle.Render(util.TruncateWidth(e.Description, descWidth)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// =============================================================================
// MARKDOWN
// =============================================================================

// Markdown renders a help document for commands: one section per command with its
// aliases, permission, cooldown and usage lines.
func Markdown(prefix string, commands []*definition.Node) string {
	var b strings.Builder
	b.WriteString("# Commands\n")
	for _, n := range commands {
		fmt.Fprintf(&b, "\n## %s%s\n\n", prefix, n.Name())
		if n.Description() != "" {
			b.WriteString(n.Description())
			b.WriteString("\n\n")
		}
		if aliases := n.Aliases(); len(aliases) > 1 {
			fmt.Fprintf(&b, "- **Aliases:** %s\n", strings.Join(aliases[1:], ", "))
		}
		if n.Permission() != "" {
			fmt.Fprintf(&b, "- **Permission:** `%s`\n", n.Permission())
		}
		if cd, ok := n.Cooldown(); ok {
			if cd.Forever() {
				b.WriteString("- **Cooldown:** once\n")
			} else {
				fmt.Fprintf(&b, "- **Cooldown:** %s\n", cd.Duration)
			}
		}
		b.WriteString("\n")
		for _, e := range Entries(prefix, n, nil, nil) {
			fmt.Fprintf(&b, "- `%s`", e.Usage)
			if e.Description != "" {
				fmt.Fprintf(&b, " %s", e.Description)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Render formats markdown for a terminal with word wrap at width. The input is
// returned unchanged when rendering fails.
func Render(markdown string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
