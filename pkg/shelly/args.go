// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

import (
	"fmt"
	"strings"
)

// Args is the raw argument vector, without the program name.
type Args []string

// Indices returns the ascending positions of every token that contains key.
// Containment rather than equality lets "--hash" find "--hash=35t".
func (a Args) Indices(key string) ([]int, error) {
	var out []int
	for i, arg := range a {
		if strings.Contains(arg, key) {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return out, nil
}

// At returns the token at i, or ErrMissingValue when i is out of range.
func (a Args) At(i int) (string, error) {
	if i < 0 || i >= len(a) {
		return "", ErrMissingValue
	}
	return a[i], nil
}
