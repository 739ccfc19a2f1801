// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shelly

// Descriptor is the declarative part of a spec. It does not change after
// registration.
type Descriptor struct {
	Key         string
	Name        string
	Description string
	Required    bool
	Coerce      Coercer
	Delimiter   string
}

// SpecOpt adjusts a Descriptor at registration.
type SpecOpt func(*Descriptor)

// Describe sets the free-text description of a spec.
func Describe(text string) SpecOpt {
	return func(d *Descriptor) { d.Description = text }
}

// Required makes absence of the spec fatal.
func Required() SpecOpt {
	return func(d *Descriptor) { d.Required = true }
}

// RequiredIf is Required when b is true. Handy when the policy comes from
// configuration.
func RequiredIf(b bool) SpecOpt {
	return func(d *Descriptor) { d.Required = b }
}

// Delimiter overrides the key/value separator used by switches.
func Delimiter(delim string) SpecOpt {
	return func(d *Descriptor) { d.Delimiter = delim }
}

// Spec is one declared argument plus its parsed value.
type Spec struct {
	desc     Descriptor
	kind     string
	strategy Strategy
	indices  []int
	cell     Cell
}

func newSpec(kind string, strategy Strategy, desc Descriptor, args Args) *Spec {
	s := &Spec{
		desc:     desc,
		kind:     kind,
		strategy: strategy,
	}
	// A missing key is not an error yet; it is reported by parse when the
	// spec turns out to be required.
	s.indices, _ = args.Indices(desc.Key)
	return s
}

func (s *Spec) Key() string         { return s.desc.Key }
func (s *Spec) Name() string        { return s.desc.Name }
func (s *Spec) Description() string { return s.desc.Description }
func (s *Spec) Required() bool      { return s.desc.Required }

// Kind returns the bucket the spec is stored in, e.g. "options".
func (s *Spec) Kind() string { return s.kind }

// Descriptor returns a copy of the spec's declaration.
func (s *Spec) Descriptor() Descriptor { return s.desc }

// Indices returns the positions of the key in the argument vector.
func (s *Spec) Indices() []int {
	return append([]int(nil), s.indices...)
}

// Value returns the parsed value, or the kind's empty value (nil for
// options and switches, 0 for flags, an empty slice for chains) when
// nothing was parsed.
func (s *Spec) Value() any {
	if v, ok := s.cell.Load(); ok {
		return v
	}
	return s.strategy.Empty()
}

// Parsed reports whether the spec holds a parsed value.
func (s *Spec) Parsed() bool {
	_, ok := s.cell.Load()
	return ok
}

// parse fills the cell. Failures of optional specs are swallowed; failures
// of required specs come back as *RequiredArgumentError. Parsing an already
// parsed spec is a no-op.
func (s *Spec) parse(args Args) error {
	if s.Parsed() {
		return nil
	}
	v, err := s.strategy.Parse(Input{
		Args:      args,
		Key:       s.desc.Key,
		Indices:   s.indices,
		Coerce:    s.desc.Coerce,
		Delimiter: s.desc.Delimiter,
	})
	if err != nil {
		if s.desc.Required {
			return &RequiredArgumentError{Key: s.desc.Key, Kind: s.kind, Err: err}
		}
		return nil
	}
	s.cell.store(v)
	return nil
}
