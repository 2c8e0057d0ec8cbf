// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package failure

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/slashkit/internal/definition"
)

func buildNode(t *testing.T) *definition.Node {
	t.Helper()
	n, err := definition.NewCommand("give").
		Permission("cmd.give").
		Subcommand([]string{"item"}, definition.NewVariant(
			definition.HandlerFunc(func([]any) (any, error) { return nil, nil }),
			definition.Param[int]("amount")).Permission("cmd.give.item")).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return n
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindArgumentParse, "ArgumentParseFailure"},
		{KindCommandCooldownActive, "CommandCooldownActive"},
		{KindInternalDispatch, "InternalDispatchError"},
		{Kind(99), "Kind(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}

	kinds := Kinds()
	if len(kinds) != 11 {
		t.Errorf("Kinds() returned %d kinds, want 11", len(kinds))
	}
	for _, k := range kinds {
		if k == KindUnknown {
			t.Error("Kinds() should not include KindUnknown")
		}
	}
}

func TestRecoverable(t *testing.T) {
	for _, k := range Kinds() {
		want := k == KindArgumentParse || k == KindArgumentValidation || k == KindSenderTypeMismatch
		if got := k.Recoverable(); got != want {
			t.Errorf("%s.Recoverable() = %v, want %v", k, got, want)
		}
	}
}

func TestErrorsIsByKind(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", CommandNotFound([]string{"nope"}))
	if !errors.Is(err, ErrCommandNotFound) {
		t.Error("errors.Is should match ErrCommandNotFound")
	}
	if errors.Is(err, ErrSubcommandNotFound) {
		t.Error("errors.Is should not match ErrSubcommandNotFound")
	}

	fe, ok := As(err)
	if !ok {
		t.Fatal("As should find the wrapped *Error")
	}
	if fe.Kind != KindCommandNotFound || len(fe.Tokens) != 1 || fe.Tokens[0] != "nope" {
		t.Errorf("As returned %+v", fe)
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("As should not match a plain error")
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("not a number")
	p := definition.Param[int]("amount")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain text", PlainText("/"), `PlainTextInput: input does not start with "/"`},
		{"empty input", CommandNotFound(nil), "CommandNotFound: no command given"},
		{"parse", ArgumentParse(p, "abc", cause), `ArgumentParseFailure: cannot read "abc" as amount: not a number`},
		{"validation", ArgumentValidation(p, cause), "ArgumentValidationFailure: invalid value for amount: not a number"},
		{"validation without parameter", ArgumentValidation(nil, nil), "ArgumentValidationFailure: invalid value"},
		{"internal", Internal("bad %s", "wiring"), "InternalDispatchError: bad wiring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("out of range")
	if err := ArgumentValidation(nil, cause); !errors.Is(err, cause) {
		t.Errorf("errors.Is(%v, cause) = false", err)
	}
}

func TestClone(t *testing.T) {
	n := buildNode(t)
	g, _ := n.Group("item")
	v := g.Variants()[0]

	orig := IncorrectArgumentCount([]string{"give", "item"}, n, 0, []*definition.Variant{v})
	cp := orig.Clone()
	if cp == orig {
		t.Fatal("Clone returned the same pointer")
	}
	cp.Tokens[0] = "take"
	cp.Rejected[0] = nil
	cp.Guard = "alive"
	if orig.Tokens[0] != "give" || orig.Rejected[0] != v || orig.Guard != "" {
		t.Errorf("changing the clone changed the original: %+v", orig)
	}
	if !errors.Is(cp, ErrIncorrectArgumentCount) {
		t.Error("clone should keep its kind")
	}

	shared := ErrArgumentParse.Clone()
	shared.Command = n
	if ErrArgumentParse.Command != nil {
		t.Error("annotating a cloned sentinel changed the sentinel")
	}
}

func TestCommandFailures(t *testing.T) {
	n := buildNode(t)
	g, _ := n.Group("item")
	v := g.Variants()[0]

	denied := PermissionDenied(n, v)
	if denied.Kind != KindPermissionDenied || !strings.Contains(denied.Message, "cmd.give.item") {
		t.Errorf("PermissionDenied(n, v) = %+v", denied)
	}
	if msg := PermissionDenied(n, nil).Message; !strings.Contains(msg, `"cmd.give"`) {
		t.Errorf("PermissionDenied(n, nil).Message = %q", msg)
	}

	count := IncorrectArgumentCount([]string{"give", "item"}, n, 0, []*definition.Variant{v})
	if len(count.Rejected) != 1 || count.Rejected[0] != v {
		t.Errorf("Rejected = %v", count.Rejected)
	}
	if !strings.Contains(count.Message, "does not take 0 argument(s)") {
		t.Errorf("Message = %q", count.Message)
	}

	if guard := BeforeGuardFailed(nil, n, v, "alive"); guard.Guard != "alive" {
		t.Errorf("Guard = %q, want alive", guard.Guard)
	}

	cd := CooldownActive(n, 1500*time.Millisecond)
	if cd.Remaining != 1500*time.Millisecond || !strings.Contains(cd.Message, "1.5s") {
		t.Errorf("CooldownActive = %+v", cd)
	}

	if sub := SubcommandNotFound([]string{"give", "x"}, n); sub.Command != n {
		t.Errorf("SubcommandNotFound.Command = %v", sub.Command)
	}

	mismatch := SenderTypeMismatch(definition.SenderParam[int]("s"), "console")
	if !strings.Contains(mismatch.Message, "sender string cannot be used as int") {
		t.Errorf("SenderTypeMismatch.Message = %q", mismatch.Message)
	}
}
