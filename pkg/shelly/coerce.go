// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cast"
)

// Coercer converts a raw token into a typed value.
type Coercer func(raw string) (any, error)

// Type adapts a typed conversion function into a Coercer.
//
//	double := shelly.Type(func(s string) (int, error) {
//	    n, err := strconv.Atoi(s)
//	    return 2 * n, err
//	})
func Type[T any](fn func(string) (T, error)) Coercer {
	return func(raw string) (any, error) {
		v, err := fn(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// Built-in coercers.
var (
	String Coercer = func(raw string) (any, error) { return raw, nil }

	Int      = Type(strconv.Atoi)
	Int64    = Type(func(raw string) (int64, error) { return strconv.ParseInt(raw, 10, 64) })
	Uint     = Type(parseUint)
	Float64  = Type(func(raw string) (float64, error) { return cast.ToFloat64E(raw) })
	Bool     = Type(func(raw string) (bool, error) { return cast.ToBoolE(raw) })
	Duration = Type(parseDuration)
	URL      = Type(url.Parse)
)

// Time returns a coercer parsing timestamps with layout. An empty layout
// accepts any format cast understands.
func Time(layout string) Coercer {
	if layout == "" {
		return Type(func(raw string) (time.Time, error) { return cast.ToTimeE(raw) })
	}
	return Type(func(raw string) (time.Time, error) {
		return time.Parse(layout, raw)
	})
}

// Integers are always decimal: "010" is ten, "0x1F" is rejected.
func parseUint(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 0)
	return uint(n), err
}

// parseDuration requires a unit so that "5" is not silently read as 5ns.
func parseDuration(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	return d, nil
}
