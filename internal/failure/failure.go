// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package failure defines the closed set of dispatch failures.
package failure

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/slashkit/internal/definition"
)

// =============================================================================
// KIND
// =============================================================================

// Kind identifies a dispatch failure. The set is closed; handlers are registered per Kind.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlainTextInput
	KindCommandNotFound
	KindSubcommandNotFound
	KindIncorrectArgumentCount
	KindArgumentParse
	KindArgumentValidation
	KindSenderTypeMismatch
	KindPermissionDenied
	KindBeforeGuardFailed
	KindCommandCooldownActive
	KindInternalDispatch
)

var kindNames = map[Kind]string{
	KindUnknown:                "Unknown",
	KindPlainTextInput:         "PlainTextInput",
	KindCommandNotFound:        "CommandNotFound",
	KindSubcommandNotFound:     "SubcommandNotFound",
	KindIncorrectArgumentCount: "IncorrectArgumentCount",
	KindArgumentParse:          "ArgumentParseFailure",
	KindArgumentValidation:     "ArgumentValidationFailure",
	KindSenderTypeMismatch:     "SenderTypeMismatch",
	KindPermissionDenied:       "PermissionDenied",
	KindBeforeGuardFailed:      "BeforeGuardFailed",
	KindCommandCooldownActive:  "CommandCooldownActive",
	KindInternalDispatch:       "InternalDispatchError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds returns every defined kind except KindUnknown.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames)-1)
	for k := KindPlainTextInput; k <= KindInternalDispatch; k++ {
		out = append(out, k)
	}
	return out
}

// Recoverable reports whether a binding failure of this kind lets the dispatcher try the
// next overload.
func (k Kind) Recoverable() bool {
	switch k {
	case KindArgumentParse, KindArgumentValidation, KindSenderTypeMismatch:
		return true
	}
	return false
}

// =============================================================================
// ERROR
// =============================================================================

// Error is a classified dispatch failure. Only the fields relevant to Kind are set.
type Error struct {
	Kind    Kind
	Message string

	// Tokens are the raw tokens of the input, prefix removed.
	Tokens []string

	// Command is the resolved command, when resolution got that far.
	Command *definition.Node

	// Variant is the variant being bound or gated.
	Variant *definition.Variant

	// Parameter is the parameter whose conversion or validation failed.
	Parameter *definition.Parameter

	// Rejected lists the variants that failed the arity check.
	Rejected []*definition.Variant

	// Guard names the precondition guard that returned false.
	Guard string

	// Remaining is the cooldown left for CommandCooldownActive.
	Remaining time.Duration

	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil && (e.Message == "" || !strings.Contains(e.Message, e.Cause.Error())) {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Clone returns a copy of e that can be annotated without changing e. Handlers may
// return the package sentinels, which are shared by every dispatch.
func (e *Error) Clone() *Error {
	cp := *e
	cp.Tokens = append([]string(nil), e.Tokens...)
	cp.Rejected = append([]*definition.Variant(nil), e.Rejected...)
	return &cp
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same Kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrPlainTextInput         = &Error{Kind: KindPlainTextInput}
	ErrCommandNotFound        = &Error{Kind: KindCommandNotFound}
	ErrSubcommandNotFound     = &Error{Kind: KindSubcommandNotFound}
	ErrIncorrectArgumentCount = &Error{Kind: KindIncorrectArgumentCount}
	ErrArgumentParse          = &Error{Kind: KindArgumentParse}
	ErrArgumentValidation     = &Error{Kind: KindArgumentValidation}
	ErrSenderTypeMismatch     = &Error{Kind: KindSenderTypeMismatch}
	ErrPermissionDenied       = &Error{Kind: KindPermissionDenied}
	ErrBeforeGuardFailed      = &Error{Kind: KindBeforeGuardFailed}
	ErrCommandCooldownActive  = &Error{Kind: KindCommandCooldownActive}
	ErrInternalDispatch       = &Error{Kind: KindInternalDispatch}
)

// As extracts a *Error from err.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// PlainText reports input that does not start with the command prefix.
func PlainText(prefix string) *Error {
	return &Error{Kind: KindPlainTextInput, Message: fmt.Sprintf("input does not start with %q", prefix)}
}

// CommandNotFound reports an unknown top-level alias.
func CommandNotFound(tokens []string) *Error {
	msg := "no command given"
	if len(tokens) > 0 {
		msg = fmt.Sprintf("unknown command %q", tokens[0])
	}
	return &Error{Kind: KindCommandNotFound, Message: msg, Tokens: tokens}
}

// SubcommandNotFound reports that node has no variants for the typed subcommand.
func SubcommandNotFound(tokens []string, node *definition.Node) *Error {
	return &Error{
		Kind:    KindSubcommandNotFound,
		Message: fmt.Sprintf("no matching subcommand for %q", node.Path()),
		Tokens:  tokens,
		Command: node,
	}
}

// IncorrectArgumentCount reports that no candidate accepts the number of arguments.
func IncorrectArgumentCount(tokens []string, node *definition.Node, got int, rejected []*definition.Variant) *Error {
	return &Error{
		Kind:     KindIncorrectArgumentCount,
		Message:  fmt.Sprintf("%s does not take %d argument(s)", node.Path(), got),
		Tokens:   tokens,
		Command:  node,
		Rejected: rejected,
	}
}

// ArgumentParse reports a converter failure for param.
func ArgumentParse(param *definition.Parameter, token string, cause error) *Error {
	msg := fmt.Sprintf("cannot read %q as %s", token, param.Name())
	if cause != nil {
		msg = fmt.Sprintf("cannot read %q as %s: %v", token, param.Name(), cause)
	}
	return &Error{Kind: KindArgumentParse, Message: msg, Parameter: param, Cause: cause}
}

// ArgumentValidation reports a constraint violation for param.
func ArgumentValidation(param *definition.Parameter, cause error) *Error {
	msg := "invalid value"
	if param != nil {
		msg = "invalid value for " + param.Name()
	}
	return &Error{Kind: KindArgumentValidation, Message: msg, Parameter: param, Cause: cause}
}

// SenderTypeMismatch reports a sender that does not fit the sender parameter.
func SenderTypeMismatch(param *definition.Parameter, sender any) *Error {
	return &Error{
		Kind:      KindSenderTypeMismatch,
		Message:   fmt.Sprintf("sender %T cannot be used as %s", sender, param.Type()),
		Parameter: param,
	}
}

// PermissionDenied reports a permission predicate denial for target.
func PermissionDenied(node *definition.Node, variant *definition.Variant) *Error {
	perm := node.Permission()
	if variant != nil && variant.Permission() != "" {
		perm = variant.Permission()
	}
	return &Error{
		Kind:    KindPermissionDenied,
		Message: fmt.Sprintf("missing permission %q", perm),
		Command: node,
		Variant: variant,
	}
}

// BeforeGuardFailed reports a precondition guard that returned false.
func BeforeGuardFailed(tokens []string, node *definition.Node, variant *definition.Variant, guard string) *Error {
	return &Error{
		Kind:    KindBeforeGuardFailed,
		Message: fmt.Sprintf("precondition %q failed", guard),
		Tokens:  tokens,
		Command: node,
		Variant: variant,
		Guard:   guard,
	}
}

// CooldownActive reports that the sender must wait remaining before using node again.
func CooldownActive(node *definition.Node, remaining time.Duration) *Error {
	return &Error{
		Kind:      KindCommandCooldownActive,
		Message:   fmt.Sprintf("%s is on cooldown for %s", node.Path(), remaining),
		Command:   node,
		Remaining: remaining,
	}
}

// Internal reports a contract violation surfaced at dispatch time.
func Internal(format string, args ...any) *Error {
	return &Error{Kind: KindInternalDispatch, Message: fmt.Sprintf(format, args...)}
}
