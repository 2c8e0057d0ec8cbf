// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch routes raw input to command handlers.
package dispatch

// State is a step of a single dispatch.
type State int

const (
	StateParse State = iota
	StateResolve
	StateBind
	StatePermit
	StateGuard
	StateCooldown
	StateInvoke
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateParse:    "PARSE",
	StateResolve:  "RESOLVE",
	StateBind:     "BIND",
	StatePermit:   "PERMIT",
	StateGuard:    "GUARD",
	StateCooldown: "COOLDOWN",
	StateInvoke:   "INVOKE",
	StateDone:     "DONE",
	StateFailed:   "FAILED",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}
