// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package failure defines the closed set of dispatch failures.
//
// Every user-facing problem the dispatcher can classify is an *Error with one of the
// Kind values below. Anything else a handler returns is treated as a defect and is
// passed back to the caller untouched.
//
// # Key Types
//
//   - Kind: closed enumeration of failure kinds
//   - Error: a classified failure carrying the context relevant to its kind
//
// # Usage
//
//	if errors.Is(err, failure.ErrPermissionDenied) {
//	    // ...
//	}
//	if fe, ok := failure.As(err); ok {
//	    fmt.Println(fe.Kind, fe.Remaining)
//	}
package failure
