// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrKeyNotFound is returned when a key does not occur in the argument vector.
	ErrKeyNotFound = errors.New("key not found")

	// ErrMissingValue is returned when the token expected after a key is absent.
	ErrMissingValue = errors.New("missing value")

	// ErrNotBound is returned when a set with specs is fired without a callback.
	ErrNotBound = errors.New("no callback bound")

	// ErrUnknownMethod is returned by Set.Register for a method nobody plugged in.
	ErrUnknownMethod = errors.New("unknown registration method")

	// ErrInvalidKey is returned when a key is empty or has the wrong shape for its kind.
	ErrInvalidKey = errors.New("invalid key")
)

// CoercionError is returned when a raw token cannot be converted to the
// spec's value type.
type CoercionError struct {
	Key   string // The key whose value failed (e.g. "-t")
	Value string // The raw token
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Key, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// RequiredArgumentError is returned when a required spec could not be parsed.
// Err holds the underlying cause (key not found, missing value or a
// *CoercionError).
type RequiredArgumentError struct {
	Key  string
	Kind string // Bucket of the spec (e.g. "options")
	Err  error
}

func (e *RequiredArgumentError) Error() string {
	return fmt.Sprintf("could not parse required argument '%s': %v", e.Key, e.Err)
}

func (e *RequiredArgumentError) Unwrap() error {
	return e.Err
}

// PluginNameError is returned by Registry.Plug when an extension's method or
// bucket name is not acceptable.
type PluginNameError struct {
	Name   string
	Reason string
}

func (e *PluginNameError) Error() string {
	return fmt.Sprintf("invalid extension name %q: %s", e.Name, e.Reason)
}

// registrationError records a failed registration on a set.
type registrationError struct {
	Method string
	Key    string
	Err    error
}

func (e *registrationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Method, e.Key, e.Err)
}

func (e *registrationError) Unwrap() error {
	return e.Err
}
