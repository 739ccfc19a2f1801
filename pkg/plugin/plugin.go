// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plugin discovers extension descriptors on disk and plugs them into
// a shelly registry.
//
// A descriptor is a TOML or YAML file naming a strategy type and the
// registration method it is exposed under:
//
//	type = "pair"
//	method = "define"
//	bucket = "defines"
//	name = "Define"
//	engine = ">= 1.0.0"
//
// Only type and method are required. The bucket defaults to the method
// plus "s", and engine is a semver constraint on shelly.Version.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/shelly/pkg/kinds"
	"github.com/yeetrun/shelly/pkg/shelly"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownType is returned when a descriptor names a type missing from
	// the type table.
	ErrUnknownType = errors.New("unknown plugin type")

	// ErrIncompatible is returned when the engine does not satisfy a
	// descriptor's engine constraint.
	ErrIncompatible = errors.New("incompatible engine version")

	// ErrMalformed is returned for descriptors missing required fields or
	// carrying unknown ones.
	ErrMalformed = errors.New("malformed descriptor")
)

// Descriptor declares one extension.
type Descriptor struct {
	Path   string `toml:"-" yaml:"-"`
	Type   string `toml:"type" yaml:"type"`
	Method string `toml:"method" yaml:"method"`
	Bucket string `toml:"bucket,omitempty" yaml:"bucket,omitempty"`
	Name   string `toml:"name,omitempty" yaml:"name,omitempty"`
	Engine string `toml:"engine,omitempty" yaml:"engine,omitempty"`
}

// Types maps descriptor type names to strategies.
type Types map[string]shelly.Strategy

// DefaultTypes returns the built-in strategies and those of package kinds.
func DefaultTypes() Types {
	t := Types{
		shelly.MethodChain:  shelly.ChainStrategy,
		shelly.MethodFlag:   shelly.FlagStrategy,
		shelly.MethodOption: shelly.OptionStrategy,
		shelly.MethodSwitch: shelly.SwitchStrategy,
	}
	for _, ext := range kinds.Extensions() {
		t[ext.Type] = ext.Strategy
	}
	return t
}

func isDescriptor(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// Discover reads every descriptor file directly inside dir. Files are
// decoded concurrently; the result is in file name order.
func Discover(ctx context.Context, dir string) ([]Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isDescriptor(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	descs := make([]Descriptor, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := ReadDescriptor(path)
			if err != nil {
				return err
			}
			descs[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return descs, nil
}

// ReadDescriptor decodes and validates a single descriptor file.
func ReadDescriptor(path string) (Descriptor, error) {
	var d Descriptor
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, &d)
		if err != nil {
			return Descriptor{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Descriptor{}, fmt.Errorf("%s: %w: unknown key %s", path, ErrMalformed, undecoded[0])
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return Descriptor{}, err
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return Descriptor{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return Descriptor{}, fmt.Errorf("%s: %w: unsupported extension", path, ErrMalformed)
	}
	d.Path = path
	if err := d.validate(); err != nil {
		return Descriptor{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func (d Descriptor) validate() error {
	if d.Type == "" {
		return fmt.Errorf("%w: missing type", ErrMalformed)
	}
	if d.Method == "" {
		return fmt.Errorf("%w: missing method", ErrMalformed)
	}
	return checkEngine(d.Engine)
}

func checkEngine(constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("%w: engine constraint %q: %v", ErrMalformed, constraint, err)
	}
	v := semver.MustParse(shelly.Version)
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %q", ErrIncompatible, shelly.Version, constraint)
	}
	return nil
}

// Extension converts d into a shelly.Extension using types.
func (d Descriptor) Extension(types Types) (shelly.Extension, error) {
	s, ok := types[d.Type]
	if !ok {
		return shelly.Extension{}, fmt.Errorf("%w %q", ErrUnknownType, d.Type)
	}
	name := d.Name
	if name == "" {
		name = d.Method
	}
	return shelly.Extension{
		Type:     d.Type,
		Method:   d.Method,
		Bucket:   d.Bucket,
		Name:     name,
		Strategy: s,
	}, nil
}

// Load plugs descs into reg in order. It stops at the first descriptor that
// cannot be plugged.
func Load(reg *shelly.Registry, descs []Descriptor, types Types) error {
	for _, d := range descs {
		ext, err := d.Extension(types)
		if err != nil {
			return fmt.Errorf("%s: %w", d.Path, err)
		}
		if err := reg.Plug(ext); err != nil {
			return fmt.Errorf("%s: %w", d.Path, err)
		}
	}
	return nil
}

// LoadDir discovers the descriptors in dir and plugs them into reg with the
// default type table.
func LoadDir(ctx context.Context, reg *shelly.Registry, dir string) ([]Descriptor, error) {
	descs, err := Discover(ctx, dir)
	if err != nil {
		return nil, err
	}
	if err := Load(reg, descs, DefaultTypes()); err != nil {
		return nil, err
	}
	return descs, nil
}
