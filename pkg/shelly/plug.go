// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ReservedPrefix marks names used internally. Extensions may not use it.
const ReservedPrefix = "_"

var identRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Extension adds a kind of spec to a registry's vocabulary.
type Extension struct {
	Type     string // Name of the strategy, as written in plugin descriptors
	Method   string // Registration method, passed to Set.Register
	Bucket   string // Storage bucket; defaults to Method + "s"
	Name     string // Display name
	Strategy Strategy
}

func validateName(name string) error {
	switch {
	case name == "":
		return &PluginNameError{Name: name, Reason: "empty"}
	case strings.HasPrefix(name, ReservedPrefix):
		return &PluginNameError{Name: name, Reason: fmt.Sprintf("prefix %q is reserved", ReservedPrefix)}
	case !identRE.MatchString(name):
		return &PluginNameError{Name: name, Reason: "not an identifier"}
	}
	return nil
}

// Plug makes ext available to every set of the registry. Its bucket is
// parsed after the built-in buckets and any bucket plugged before it.
func (r *Registry) Plug(ext Extension) error {
	if ext.Strategy == nil {
		return fmt.Errorf("extension %q: no strategy", ext.Method)
	}
	if ext.Bucket == "" {
		ext.Bucket = ext.Method + "s"
	}
	if err := validateName(ext.Method); err != nil {
		return err
	}
	if err := validateName(ext.Bucket); err != nil {
		return err
	}
	if _, ok := r.methods[ext.Method]; ok {
		return &PluginNameError{Name: ext.Method, Reason: "method already registered"}
	}
	if slices.Contains(r.order, ext.Bucket) {
		return &PluginNameError{Name: ext.Bucket, Reason: "bucket already registered"}
	}
	r.install(ext)
	r.exts = append(r.exts, ext)
	r.logf("plugged %s (method %s, bucket %s)", ext.Name, ext.Method, ext.Bucket)
	return nil
}

// Extensions returns the plugged extensions in plug order.
func (r *Registry) Extensions() []Extension {
	return append([]Extension(nil), r.exts...)
}

// Methods returns every registration method, built-in ones first.
func (r *Registry) Methods() []string {
	out := make([]string, 0, len(r.methods))
	for _, ext := range builtins() {
		out = append(out, ext.Method)
	}
	for _, ext := range r.exts {
		out = append(out, ext.Method)
	}
	return out
}
