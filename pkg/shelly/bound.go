// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

import (
	"maps"
	"slices"
)

// Bound maps spec names to the parsed specs handed to a callback.
type Bound map[string]*Spec

// Callback receives the specs of a fired set.
type Callback func(Bound) error

// Value returns the value of the named spec, or nil if no such spec exists.
func (b Bound) Value(name string) any {
	if s, ok := b[name]; ok {
		return s.Value()
	}
	return nil
}

// Names returns the bound names in sorted order.
func (b Bound) Names() []string {
	return slices.Sorted(maps.Keys(b))
}

// As returns the value of s as a T. It reports false when s is nil or its
// value has a different type, which includes an unparsed option.
func As[T any](s *Spec) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	v, ok := s.Value().(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// AsSlice returns the elements of a chain-like value as a []T.
func AsSlice[T any](s *Spec) ([]T, bool) {
	if s == nil {
		return nil, false
	}
	switch v := s.Value().(type) {
	case []T:
		return v, true
	case []any:
		out := make([]T, 0, len(v))
		for _, item := range v {
			t, ok := item.(T)
			if !ok {
				return nil, false
			}
			out = append(out, t)
		}
		return out, true
	}
	return nil, false
}
