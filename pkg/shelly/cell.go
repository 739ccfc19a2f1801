// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

// Cell holds the parsed result of a Spec. It is written at most once.
type Cell struct {
	data any
	set  bool
}

// Load returns the stored value and whether one was stored.
func (c *Cell) Load() (any, bool) {
	return c.data, c.set
}

// store writes v unless a value is already present. It reports whether the
// write happened.
func (c *Cell) store(v any) bool {
	if c.set {
		return false
	}
	c.data = v
	c.set = true
	return true
}
