// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/slashkit/internal/definition"
)

type member struct{ perms map[string]bool }

func (m member) HasPermission(node string) bool { return m.perms[node] }

var noop = definition.HandlerFunc(func([]any) (any, error) { return nil, nil })

func buildNode(t *testing.T) *definition.Node {
	t.Helper()
	n, err := definition.NewCommand("heal").
		Permission("cmd.heal").
		Guard("alive", 1, func(any) bool { return true }).
		Guard("not-busy", 5, func(s any) bool { return s != "busy" }).
		Default(definition.NewVariant(noop).Permission("cmd.heal.self")).
		Build()
	require.NoError(t, err)
	return n
}

func TestNodePermissions(t *testing.T) {
	n := buildNode(t)
	v := n.Defaults()[0]
	p := NodePermissions()

	admin := member{perms: map[string]bool{"cmd.heal": true, "cmd.heal.self": true}}
	partial := member{perms: map[string]bool{"cmd.heal": true}}

	assert.Nil(t, Check(p, admin, n, v))
	assert.Equal(t, definition.Target(v), Check(p, partial, n, v))
	assert.Equal(t, definition.Target(n), Check(p, member{}, n, v))
	assert.Equal(t, definition.Target(n), Check(p, "no permitter", n, v))
}

func TestEmptyPermissionAlwaysAllowed(t *testing.T) {
	n, err := definition.NewCommand("ping").Default(definition.NewVariant(noop)).Build()
	require.NoError(t, err)
	assert.Nil(t, Check(NodePermissions(), nil, n, n.Defaults()[0]))
}

func TestProbeTreatsPanicAsDenial(t *testing.T) {
	n := buildNode(t)
	panicky := PermissionFunc(func(any, definition.Target) bool { panic("boom") })

	assert.False(t, Probe(panicky, nil, n))
	assert.True(t, Probe(AllowAll, nil, n))
}

func TestRunGuardsPriorityOrder(t *testing.T) {
	n := buildNode(t)
	guards := n.Guards()
	require.Len(t, guards, 2)
	assert.Equal(t, "not-busy", guards[0].Name)

	g, ok := RunGuards(n, "busy")
	assert.False(t, ok)
	assert.Equal(t, "not-busy", g.Name)

	_, ok = RunGuards(n, "idle")
	assert.True(t, ok)
}
