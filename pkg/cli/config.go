// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/shelly/pkg/shelly"
)

// DefaultConfigName is looked up in the working directory when no config
// path is given.
const DefaultConfigName = "shelly.toml"

// Config is the content of shelly.toml.
type Config struct {
	Plugins string    `toml:"plugins,omitempty"`
	Bind    []Binding `toml:"bind,omitempty"`
}

// Binding declares one extra spec registered by the binary.
type Binding struct {
	Method      string `toml:"method"`
	Key         string `toml:"key"`
	Name        string `toml:"name,omitempty"`
	Type        string `toml:"type,omitempty"`
	Description string `toml:"description,omitempty"`
	Required    bool   `toml:"required,omitempty"`
	Delimiter   string `toml:"delimiter,omitempty"`
}

var coercers = map[string]shelly.Coercer{
	"string":   shelly.String,
	"int":      shelly.Int,
	"int64":    shelly.Int64,
	"uint":     shelly.Uint,
	"float":    shelly.Float64,
	"bool":     shelly.Bool,
	"duration": shelly.Duration,
	"url":      shelly.URL,
	"time":     shelly.Time(""),
}

// CoercerNames lists the value types a binding may name.
func CoercerNames() []string {
	names := make([]string, 0, len(coercers))
	for name := range coercers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Coercer returns the coercer for a value type name. An empty name means
// string.
func Coercer(name string) (shelly.Coercer, error) {
	if name == "" {
		return shelly.String, nil
	}
	c, ok := coercers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown value type %q (want one of %s)", name, strings.Join(CoercerNames(), ", "))
	}
	return c, nil
}

// Apply registers the binding on s.
func (b Binding) Apply(s *shelly.Set) (*shelly.Set, error) {
	coerce, err := Coercer(b.Type)
	if err != nil {
		return s, fmt.Errorf("bind %s: %w", b.Key, err)
	}
	opts := []shelly.SpecOpt{
		shelly.Describe(b.Description),
		shelly.RequiredIf(b.Required),
	}
	if b.Delimiter != "" {
		opts = append(opts, shelly.Delimiter(b.Delimiter))
	}
	return s.Register(b.Method, b.Key, b.Name, coerce, opts...), nil
}

// LoadConfig reads the config at path. With an empty path it tries
// DefaultConfigName in the working directory and returns an empty config if
// that does not exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigName
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}
