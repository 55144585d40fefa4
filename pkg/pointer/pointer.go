// Copyright (c) 2026 Ripple. All rights reserved.
// Author: dev@ripple.social

/*
Package pointer provides utilities for working with pointers in Go.

It utilizes generics to simplify the creation and dereferencing of pointers,
which the client needs constantly for optional profile fields (bio, updated
timestamps) that distinguish "absent" from "zero value".

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Safely dereferences a pointer, returning the zero value if nil.
*/
package pointer

// To returns a pointer to the provided value.
// It is useful when a struct field expects a pointer to a literal,
// e.g. pointer.To("hello").
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
