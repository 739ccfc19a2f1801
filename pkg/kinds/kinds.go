// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kinds provides spec kinds beyond the four built into shelly.
// They are meant to be plugged into a registry, usually through plugin
// descriptors.
package kinds

import (
	"fmt"
	"strings"

	"github.com/yeetrun/shelly/pkg/shelly"
)

// Pair collects name=value tokens that follow each occurrence of the key
// into a map. Later names overwrite earlier ones.
//
//	-D user=root -D port=22 → map[port:22 user:root]
type Pair struct{}

func (Pair) Parse(in shelly.Input) (any, error) {
	if _, err := in.First(); err != nil {
		return nil, err
	}
	delim := in.Delimiter
	if delim == "" {
		delim = shelly.DefaultDelimiter
	}
	out := make(map[string]any, len(in.Indices))
	for _, i := range in.Indices {
		raw, err := in.ValueAfter(i)
		if err != nil {
			return nil, err
		}
		name, value, ok := strings.Cut(raw, delim)
		if !ok || name == "" {
			return nil, &shelly.CoercionError{
				Key:   in.Key,
				Value: raw,
				Err:   fmt.Errorf("want name%svalue", delim),
			}
		}
		v, err := in.Convert(value)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

func (Pair) Empty() any { return map[string]any{} }

// Presence reports whether a token equal to the key appears at all.
//
//	--dry-run → true
type Presence struct{}

func (Presence) Parse(in shelly.Input) (any, error) {
	for _, i := range in.Indices {
		if in.Args[i] == in.Key {
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: %s", shelly.ErrKeyNotFound, in.Key)
}

func (Presence) Empty() any { return false }

// List splits the value of a switch on commas.
//
//	--tags=a,b,c → [a b c]
type List struct{}

// ListSeparator separates list elements.
const ListSeparator = ","

func (List) Parse(in shelly.Input) (any, error) {
	raw, err := shelly.SwitchStrategy.Parse(shelly.Input{
		Args:      in.Args,
		Key:       in.Key,
		Indices:   in.Indices,
		Coerce:    shelly.String,
		Delimiter: in.Delimiter,
	})
	if err != nil {
		return nil, err
	}
	parts := strings.Split(raw.(string), ListSeparator)
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		v, err := in.Convert(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (List) Empty() any { return []any{} }

// Last reads the token after the final occurrence of the key, letting later
// arguments override earlier ones.
//
//	-o a -o b → b
type Last struct{}

func (Last) Parse(in shelly.Input) (any, error) {
	if _, err := in.First(); err != nil {
		return nil, err
	}
	raw, err := in.ValueAfter(in.Indices[len(in.Indices)-1])
	if err != nil {
		return nil, err
	}
	return in.Convert(raw)
}

func (Last) Empty() any { return nil }

// Extensions returns the kinds of this package under their conventional
// method and bucket names.
func Extensions() []shelly.Extension {
	return []shelly.Extension{
		{Type: "pair", Method: "pair", Bucket: "pairs", Name: "Pair", Strategy: Pair{}},
		{Type: "presence", Method: "presence", Bucket: "presences", Name: "Presence", Strategy: Presence{}},
		{Type: "list", Method: "list", Bucket: "lists", Name: "List", Strategy: List{}},
		{Type: "last", Method: "last", Bucket: "lasts", Name: "Last", Strategy: Last{}},
	}
}

// PlugAll plugs every kind of this package into reg.
func PlugAll(reg *shelly.Registry) error {
	for _, ext := range Extensions() {
		if err := reg.Plug(ext); err != nil {
			return err
		}
	}
	return nil
}
