// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger configures structured logging for slashkit components.
//
// Components take a *log.Logger from github.com/charmbracelet/log. NewStyledLogger
// builds one with a prefix and colored levels; Discard builds a silent one.
package logger
