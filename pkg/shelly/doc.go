// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shelly binds command-line arguments to callbacks declaratively.
//
// Callers register argument specs against a callback and the engine scans
// the raw argument vector, coerces values and invokes the callback with the
// bound specs. Four kinds of spec are built in:
//   - Option: a value token follows the key (-f file.txt)
//   - Switch: the value is embedded in the key token (--hash=35t1251)
//   - Flag: a count of a short flag, stacked or repeated (-vvv, -v -v)
//   - Chain: a value after every occurrence of the key (-z 1 -z 3)
//
// # Basic Usage
//
//	reg := shelly.New(os.Args[1:])
//	reg.Shell().
//	    Option("-f", "file_name", shelly.String, shelly.Describe("File name"), shelly.Required()).
//	    Flag("-v", "verbosity", shelly.Describe("Verbosity level")).
//	    Chain("-z", "sizes", shelly.Int).
//	    Bind(func(b shelly.Bound) error {
//	        name, _ := shelly.As[string](b["file_name"])
//	        sizes, _ := shelly.AsSlice[int](b["sizes"])
//	        fmt.Println(name, b["verbosity"].Value(), sizes)
//	        return nil
//	    })
//	if err := reg.FireAll(); err != nil {
//	    log.Fatal(err)
//	}
//
// Optional arguments that cannot be parsed leave their value empty. Required
// arguments that cannot be parsed fail the whole set with a
// *RequiredArgumentError and the callback is never invoked.
//
// # Extensions
//
// New kinds are added with Registry.Plug. A plugged kind gets its own bucket
// and registration method, reachable through Set.Register:
//
//	err := reg.Plug(shelly.Extension{
//	    Method:   "define",
//	    Bucket:   "defines",
//	    Strategy: kinds.Pair{},
//	})
//	reg.Shell().Register("define", "-D", "defines", shelly.String)
package shelly
