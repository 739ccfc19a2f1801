// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

import (
	"os"

	"github.com/google/uuid"
)

// Registration methods and buckets of the built-in kinds.
const (
	MethodChain  = "chain"
	MethodFlag   = "flag"
	MethodOption = "option"
	MethodSwitch = "switch"

	BucketChains   = "chains"
	BucketFlags    = "flags"
	BucketOptions  = "options"
	BucketSwitches = "switches"
)

// Version is the engine version plugin descriptors are checked against.
const Version = "1.0.0"

func builtins() []Extension {
	return []Extension{
		{Type: MethodChain, Method: MethodChain, Bucket: BucketChains, Name: "Chain", Strategy: ChainStrategy},
		{Type: MethodFlag, Method: MethodFlag, Bucket: BucketFlags, Name: "Flag", Strategy: FlagStrategy},
		{Type: MethodOption, Method: MethodOption, Bucket: BucketOptions, Name: "Option", Strategy: OptionStrategy},
		{Type: MethodSwitch, Method: MethodSwitch, Bucket: BucketSwitches, Name: "Switch", Strategy: SwitchStrategy},
	}
}

// Registry is the ordered collection of sets waiting to be fired, together
// with the argument vector they parse and the registration vocabulary.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	// Logf receives debug lines about registration and firing. Nil
	// disables logging.
	Logf func(format string, args ...any)

	args    Args
	sets    []*Set
	methods map[string]Extension
	order   []string // Bucket parse order
	exts    []Extension
}

// New returns a registry over args, which must not include the program
// name.
func New(args []string) *Registry {
	r := &Registry{args: append(Args(nil), args...)}
	r.init()
	return r
}

func (r *Registry) init() {
	r.sets = nil
	r.exts = nil
	r.order = nil
	r.methods = make(map[string]Extension)
	for _, ext := range builtins() {
		r.install(ext)
	}
}

func (r *Registry) install(ext Extension) {
	r.methods[ext.Method] = ext
	r.order = append(r.order, ext.Bucket)
}

func (r *Registry) logf(format string, args ...any) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}

// Args returns a copy of the argument vector.
func (r *Registry) Args() Args {
	return append(Args(nil), r.args...)
}

// Shell starts a new set and appends it to the registry.
func (r *Registry) Shell() *Set {
	s := &Set{
		reg:     r,
		id:      uuid.NewString()[:8],
		buckets: make(map[string]*bucket),
	}
	r.sets = append(r.sets, s)
	r.logf("set %s: created", s.id)
	return s
}

// Sets returns the live sets in registration order.
func (r *Registry) Sets() []*Set {
	return append([]*Set(nil), r.sets...)
}

// Len returns the number of live sets.
func (r *Registry) Len() int { return len(r.sets) }

// Reset drops every set and plugged extension.
func (r *Registry) Reset() {
	r.init()
}

// FireAll fires the sets in registration order. Sets without specs are
// pruned, sets that already fired are skipped. The first error stops the
// pass; sets fired before it stay fired.
func (r *Registry) FireAll() error {
	kept := make([]*Set, 0, len(r.sets))
	for i, s := range r.sets {
		switch {
		case s.state == Fired:
		case s.Empty() && s.err == nil:
			s.state = Pruned
			r.logf("set %s: pruned, nothing registered", s.id)
			continue
		default:
			if err := s.Fire(); err != nil {
				r.sets = append(kept, r.sets[i:]...)
				return err
			}
		}
		kept = append(kept, s)
	}
	r.sets = kept
	return nil
}

var std *Registry

// Default returns the process-wide registry, created over os.Args[1:] on
// first use.
func Default() *Registry {
	if std == nil {
		std = New(os.Args[1:])
	}
	return std
}

// Init replaces the process-wide registry with one over args.
func Init(args []string) *Registry {
	std = New(args)
	return std
}

// Shell starts a new set on the process-wide registry.
func Shell() *Set { return Default().Shell() }

// FireAll fires the process-wide registry.
func FireAll() error { return Default().FireAll() }

// Reset discards the process-wide registry.
func Reset() { std = nil }
