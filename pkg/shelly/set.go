// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

import (
	"errors"
	"fmt"
	"strings"
)

// State is the lifecycle position of a Set.
type State int

const (
	// Pending sets are still being declared: no callback or no specs yet.
	Pending State = iota
	// Armed sets have a callback and at least one spec.
	Armed
	// Fired sets have been parsed and their callback invoked.
	Fired
	// Pruned sets declared nothing and were dropped by FireAll.
	Pruned
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Armed:
		return "armed"
	case Fired:
		return "fired"
	case Pruned:
		return "pruned"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type bucket struct {
	specs []*Spec
	byKey map[string]int
}

// put stores s, replacing an earlier spec with the same key in place.
func (b *bucket) put(s *Spec) {
	if i, ok := b.byKey[s.Key()]; ok {
		b.specs[i] = s
		return
	}
	b.byKey[s.Key()] = len(b.specs)
	b.specs = append(b.specs, s)
}

// Set is the group of specs registered against one callback. Every
// registration method returns the set so declarations can be chained.
type Set struct {
	reg      *Registry
	id       string
	callback Callback
	buckets  map[string]*bucket
	err      error
	state    State
}

// ID identifies the set in log lines and errors.
func (s *Set) ID() string { return s.id }

func (s *Set) State() State { return s.state }

// Err returns the registration errors collected so far.
func (s *Set) Err() error { return s.err }

// Option registers a spec whose value is the token after the key.
func (s *Set) Option(key, name string, coerce Coercer, opts ...SpecOpt) *Set {
	return s.Register(MethodOption, key, name, coerce, opts...)
}

// Switch registers a spec whose value follows a delimiter inside the key
// token.
func (s *Set) Switch(key, name string, coerce Coercer, opts ...SpecOpt) *Set {
	return s.Register(MethodSwitch, key, name, coerce, opts...)
}

// Flag registers a counted short flag.
func (s *Set) Flag(key, name string, opts ...SpecOpt) *Set {
	return s.Register(MethodFlag, key, name, nil, opts...)
}

// Chain registers a spec collecting the token after every occurrence of the
// key.
func (s *Set) Chain(key, name string, coerce Coercer, opts ...SpecOpt) *Set {
	return s.Register(MethodChain, key, name, coerce, opts...)
}

// Register adds a spec through the registration method named method, which
// is either built in or plugged into the registry. An empty name defaults to
// the key without leading dashes. Failures are recorded on the set and
// reported by Parse and Fire.
func (s *Set) Register(method, key, name string, coerce Coercer, opts ...SpecOpt) *Set {
	ext, ok := s.reg.methods[method]
	if !ok {
		s.fail(method, key, ErrUnknownMethod)
		return s
	}
	if strings.TrimSpace(key) == "" {
		s.fail(method, key, ErrInvalidKey)
		return s
	}
	if v, ok := ext.Strategy.(KeyValidator); ok {
		if err := v.ValidateKey(key); err != nil {
			s.fail(method, key, err)
			return s
		}
	}
	if name == "" {
		name = strings.TrimLeft(key, "-")
	}

	desc := Descriptor{Key: key, Name: name, Coerce: coerce}
	for _, opt := range opts {
		opt(&desc)
	}
	b, ok := s.buckets[ext.Bucket]
	if !ok {
		b = &bucket{byKey: make(map[string]int)}
		s.buckets[ext.Bucket] = b
	}
	b.put(newSpec(ext.Bucket, ext.Strategy, desc, s.reg.args))
	s.reg.logf("set %s: %s %s as %q", s.id, method, key, name)
	s.arm()
	return s
}

func (s *Set) fail(method, key string, err error) {
	s.err = errors.Join(s.err, &registrationError{Method: method, Key: key, Err: err})
}

// Bind attaches the callback. Only the first non-nil callback is kept.
func (s *Set) Bind(cb Callback) *Set {
	if cb == nil || s.callback != nil {
		return s
	}
	s.callback = cb
	s.arm()
	return s
}

func (s *Set) arm() {
	if s.state == Pending && s.callback != nil && !s.Empty() {
		s.state = Armed
	}
}

// Len returns the number of specs across all buckets.
func (s *Set) Len() int {
	n := 0
	for _, b := range s.buckets {
		n += len(b.specs)
	}
	return n
}

// Empty reports whether no spec was registered.
func (s *Set) Empty() bool { return s.Len() == 0 }

// Specs returns the specs in parse order: chains, flags, options,
// switches, then plugged buckets in the order they were plugged.
func (s *Set) Specs() []*Spec {
	var out []*Spec
	for _, name := range s.reg.order {
		if b, ok := s.buckets[name]; ok {
			out = append(out, b.specs...)
		}
	}
	return out
}

// Lookup returns the spec stored under key in the named bucket.
func (s *Set) Lookup(bucketName, key string) (*Spec, bool) {
	b, ok := s.buckets[bucketName]
	if !ok {
		return nil, false
	}
	i, ok := b.byKey[key]
	if !ok {
		return nil, false
	}
	return b.specs[i], true
}

// Parse parses every spec. It stops at the first required spec that
// cannot be parsed. Parsing twice yields the same values.
func (s *Set) Parse() error {
	if s.err != nil {
		return s.err
	}
	for _, spec := range s.Specs() {
		if err := spec.parse(s.reg.args); err != nil {
			return err
		}
	}
	return nil
}

// Bound returns the specs keyed by name. When names clash the bucket later
// in parse order wins.
func (s *Set) Bound() Bound {
	b := make(Bound)
	for _, spec := range s.Specs() {
		b[spec.Name()] = spec
	}
	return b
}

// Fire parses the set and invokes its callback. The callback is not invoked
// when parsing fails.
func (s *Set) Fire() error {
	if err := s.Parse(); err != nil {
		return err
	}
	if s.callback == nil {
		return fmt.Errorf("set %s: %w", s.id, ErrNotBound)
	}
	s.state = Fired
	s.reg.logf("set %s: firing with %d specs", s.id, s.Len())
	if err := s.callback(s.Bound()); err != nil {
		return fmt.Errorf("set %s: %w", s.id, err)
	}
	return nil
}
