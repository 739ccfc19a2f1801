// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli parses the shelly binary's own flags. Everything it does not
// recognise is handed to the binding engine untouched.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/shayne/yargs"
)

// Environment overrides for flags left unset.
const (
	EnvPluginDir = "SHELLY_PLUGIN_DIR"
	EnvConfig    = "SHELLY_CONFIG"
)

// GlobalFlags are the flags consumed by the binary itself.
type GlobalFlags struct {
	Plugins string `flag:"plugins" help:"Directory of plugin descriptors (SHELLY_PLUGIN_DIR)"`
	Config  string `flag:"config" help:"Path to shelly.toml (SHELLY_CONFIG)"`
	LogFile string `flag:"log-file" help:"Write the debug log to a rotated file"`
	Debug   bool   `flag:"debug" help:"Log registration and firing"`
	NoColor bool   `flag:"no-color" help:"Disable colored output"`
}

// ParseGlobal removes the binary's flags from args and returns the rest.
// Only the double-dash spellings (--debug) belong to the binary; -debug is
// left for the engine. Arguments after "--" are never inspected.
func ParseGlobal(args []string) (GlobalFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	masked, hidden := maskShortTokens(parseArgs)
	result, err := yargs.ParseKnownFlags[GlobalFlags](masked, yargs.KnownFlagsOptions{})
	if err != nil {
		return GlobalFlags{}, nil, err
	}
	flags := result.Flags
	for _, f := range []*string{&flags.Plugins, &flags.Config, &flags.LogFile} {
		*f = unmask(*f, hidden)
	}
	rest := make([]string, 0, len(result.RemainingArgs)+len(extraArgs))
	for _, arg := range result.RemainingArgs {
		rest = append(rest, unmask(arg, hidden))
	}
	rest = append(rest, extraArgs...)
	return withEnv(flags), rest, nil
}

// maskShortTokens replaces single-dash tokens with placeholders so yargs,
// which ignores the number of leading dashes, cannot match them.
func maskShortTokens(args []string) ([]string, map[string]string) {
	out := make([]string, len(args))
	hidden := make(map[string]string)
	for i, arg := range args {
		if len(arg) > 1 && arg[0] == '-' && !strings.HasPrefix(arg, "--") {
			ph := fmt.Sprintf("\x00%d", i)
			hidden[ph] = arg
			arg = ph
		}
		out[i] = arg
	}
	return out, hidden
}

func unmask(s string, hidden map[string]string) string {
	if orig, ok := hidden[s]; ok {
		return orig
	}
	return s
}

func withEnv(f GlobalFlags) GlobalFlags {
	if f.Plugins == "" {
		f.Plugins = os.Getenv(EnvPluginDir)
	}
	if f.Config == "" {
		f.Config = os.Getenv(EnvConfig)
	}
	return f
}

func splitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}
