// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

import (
	"fmt"
	"strings"
)

// DefaultDelimiter separates a switch key from its value.
const DefaultDelimiter = "="

// Strategy is the parse algorithm of one kind of spec.
type Strategy interface {
	// Parse extracts the value of a spec from in. Any error means "no
	// value"; the caller decides whether that is fatal.
	Parse(in Input) (any, error)
	// Empty is the value reported by a spec that has no parsed value.
	Empty() any
}

// KeyValidator is implemented by strategies that restrict the shape of
// their keys. It is consulted at registration time.
type KeyValidator interface {
	ValidateKey(key string) error
}

// Input is everything a Strategy sees while parsing one spec.
type Input struct {
	Args      Args
	Key       string
	Indices   []int // Positions of Key in Args, ascending
	Coerce    Coercer
	Delimiter string
}

// First returns the first index of the key.
func (in Input) First() (int, error) {
	if len(in.Indices) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrKeyNotFound, in.Key)
	}
	return in.Indices[0], nil
}

// ValueAfter returns the token following position i.
func (in Input) ValueAfter(i int) (string, error) {
	raw, err := in.Args.At(i + 1)
	if err != nil {
		return "", fmt.Errorf("%s: %w", in.Key, err)
	}
	return raw, nil
}

// Convert runs the coercer on raw. Failures come back as *CoercionError.
func (in Input) Convert(raw string) (any, error) {
	coerce := in.Coerce
	if coerce == nil {
		coerce = String
	}
	v, err := coerce(raw)
	if err != nil {
		return nil, &CoercionError{Key: in.Key, Value: raw, Err: err}
	}
	return v, nil
}

// Built-in strategies.
var (
	OptionStrategy Strategy = optionStrategy{}
	SwitchStrategy Strategy = switchStrategy{}
	FlagStrategy   Strategy = flagStrategy{}
	ChainStrategy  Strategy = chainStrategy{}
)

// optionStrategy reads the token after the first occurrence of the key.
//
//	-x 70 → 70
type optionStrategy struct{}

func (optionStrategy) Parse(in Input) (any, error) {
	i, err := in.First()
	if err != nil {
		return nil, err
	}
	raw, err := in.ValueAfter(i)
	if err != nil {
		return nil, err
	}
	return in.Convert(raw)
}

func (optionStrategy) Empty() any { return nil }

// switchStrategy reads the value embedded in the key token. Everything after
// the first delimiter is the value.
//
//	--verbosity=4 → 4
//	--kv=a=b      → a=b
type switchStrategy struct{}

func (switchStrategy) Parse(in Input) (any, error) {
	i, err := in.First()
	if err != nil {
		return nil, err
	}
	delim := in.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}
	token := in.Args[i]
	_, raw, ok := strings.Cut(token, delim)
	if !ok {
		return nil, &CoercionError{
			Key:   in.Key,
			Value: token,
			Err:   fmt.Errorf("missing delimiter %q", delim),
		}
	}
	return in.Convert(raw)
}

func (switchStrategy) Empty() any { return nil }

// flagStrategy counts a short flag across stacked and repeated tokens.
//
//	-v -v → 2
//	-vvv  → 3
type flagStrategy struct{}

func (flagStrategy) ValidateKey(key string) error {
	if len(key) != 2 || key[0] != '-' || key[1] == '-' {
		return fmt.Errorf("%w: flag keys are a dash and one character, got %q", ErrInvalidKey, key)
	}
	return nil
}

func (f flagStrategy) Parse(in Input) (any, error) {
	if err := f.ValidateKey(in.Key); err != nil {
		return 0, err
	}
	id := in.Key[1:]
	count := 0
	for _, arg := range in.Args {
		if strings.HasPrefix(arg, "--") || !strings.HasPrefix(arg, in.Key) {
			continue
		}
		// -vx is not -v.
		if strings.Trim(arg[1:], id) != "" {
			continue
		}
		count += strings.Count(arg, id)
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: %s", ErrKeyNotFound, in.Key)
	}
	return count, nil
}

func (flagStrategy) Empty() any { return 0 }

// chainStrategy reads the token after every occurrence of the key.
//
//	-z 1 -z 2 -z 3 → [1 2 3]
type chainStrategy struct{}

func (chainStrategy) Parse(in Input) (any, error) {
	if _, err := in.First(); err != nil {
		return nil, err
	}
	out := make([]any, 0, len(in.Indices))
	for _, i := range in.Indices {
		raw, err := in.ValueAfter(i)
		if err != nil {
			return nil, err
		}
		v, err := in.Convert(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (chainStrategy) Empty() any { return []any{} }
