// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"sort"
	"strings"

	"github.com/jeranaias/slashkit/internal/resolver"
)

// =============================================================================
// RANKED COMPLETIONS
// =============================================================================

// Completion is a suggestion with display data for interactive front ends.
type Completion struct {
	// Value to insert in place of the partial token
	Value string

	// Display text, "alias -> name" for secondary aliases
	Display string

	// Description shown alongside
	Description string

	// Score for ranking (higher = better match)
	Score int
}

// Complete returns the same candidates as Suggest, ranked by score and then
// alphabetically.
func (e *Engine) Complete(sender any, input string) []Completion {
	rest, _ := resolver.Strip(input, e.prefix)
	partial := ""
	if !endsWithSpace(input) {
		if fields := resolver.Tokenize(rest); len(fields) > 0 {
			partial = fields[len(fields)-1]
		}
	}

	items := e.collect(sender, input)
	completions := make([]Completion, 0, len(items))
	for _, it := range items {
		c := Completion{
			Value:       it.value,
			Display:     it.value,
			Description: it.description,
			Score:       calculateScore(it.value, partial),
		}
		if it.kind != kindValue && it.primary != "" && it.primary != it.value {
			c.Display = it.value + " -> " + it.primary
			c.Score -= 10
		}
		completions = append(completions, c)
	}
	sortCompletions(completions)
	return completions
}

// calculateScore calculates a match score for completion ranking.
// Higher score = better match.
func calculateScore(value, partial string) int {
	value = strings.ToLower(value)
	partial = strings.ToLower(partial)

	score := 100

	if value == partial {
		return score + 100
	}

	// Prefix match bonus, shorter completions first
	if strings.HasPrefix(value, partial) {
		score += 50
		score += 20 - len(value)
	}

	score -= len(value) / 2

	return score
}

// sortCompletions sorts completions by score (descending), then alphabetically.
func sortCompletions(completions []Completion) {
	sort.SliceStable(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}
