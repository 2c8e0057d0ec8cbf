// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package help renders usage strings and command listings.
//
// Usage builds "/give item <amount>" style syntax from a variant. Entries walks a
// command tree and keeps what the sender may use. Listing aligns entries in two
// columns with lipgloss styles; Markdown and Render produce a glamour-formatted
// reference.
package help
