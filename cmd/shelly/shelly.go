// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command shelly binds its command line to the demo argument set, plus any
// bindings listed in shelly.toml, and prints what it found.
//
//	shelly -f notes.txt -t 3 --hash=abc -vv -z 1 -z 3 -z 6
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/yeetrun/shelly/pkg/cli"
	"github.com/yeetrun/shelly/pkg/plugin"
	"github.com/yeetrun/shelly/pkg/shelly"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags, rest, err := cli.ParseGlobal(args)
	if err != nil {
		return err
	}
	if flags.NoColor {
		color.NoColor = true
	}
	logger, closeLog := newLogger(flags)
	defer closeLog()

	cfg, err := cli.LoadConfig(flags.Config)
	if err != nil {
		return err
	}

	reg := shelly.New(rest)
	if flags.Debug {
		reg.Logf = logger.Printf
	}

	pluginDir := flags.Plugins
	if pluginDir == "" {
		pluginDir = cfg.Plugins
	}
	if pluginDir != "" {
		descs, err := plugin.LoadDir(ctx, reg, pluginDir)
		if err != nil {
			return err
		}
		logger.Printf("loaded %d plugins from %s", len(descs), pluginDir)
	}

	registerConcept(reg.Shell(), stdout)

	extra := reg.Shell()
	for _, b := range cfg.Bind {
		if _, err := b.Apply(extra); err != nil {
			return err
		}
	}
	extra.Bind(func(b shelly.Bound) error {
		return printBound(stdout, "config", b)
	})

	return reg.FireAll()
}

var twice = shelly.Type(func(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return 2 * n, nil
})

func registerConcept(s *shelly.Set, stdout io.Writer) {
	s.Option("-f", "file_name", shelly.String, shelly.Required(), shelly.Describe("file to read"))
	s.Option("-t", "twice", twice, shelly.Required(), shelly.Describe("number to double"))
	s.Switch("--hash", "hash_value", shelly.String, shelly.Describe("hash to compare against"))
	s.Flag("-v", "verbosity_level", shelly.Describe("verbosity, repeat to raise"))
	s.Chain("-z", "chain", shelly.Int, shelly.Describe("numbers to collect"))
	s.Bind(func(b shelly.Bound) error {
		return printBound(stdout, "concept", b)
	})
}

func printBound(w io.Writer, title string, b shelly.Bound) error {
	fmt.Fprintln(w, color.New(color.Bold).Sprint(title))
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tKEY\tVALUE")
	for _, name := range b.Names() {
		spec := b[name]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", color.CyanString(name), spec.Kind(), spec.Key(), formatValue(spec.Value()))
	}
	return tw.Flush()
}

func formatValue(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}
