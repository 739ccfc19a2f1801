// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command concept binds os.Args through the process-wide registry.
//
//	go run ./example/concept -f notes.txt -t 3 --hash=abc -vv -z 1 -z 3 -z 6
package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/yeetrun/shelly/pkg/shelly"
)

func main() {
	twice := shelly.Type(func(raw string) (int, error) {
		n, err := strconv.Atoi(raw)
		return 2 * n, err
	})

	shelly.Shell().
		Option("-f", "file_name", shelly.String, shelly.Required()).
		Option("-t", "twice", twice, shelly.Required()).
		Switch("--hash", "hash_value", shelly.String).
		Flag("-v", "verbosity_level").
		Chain("-z", "chain", shelly.Int).
		Bind(func(b shelly.Bound) error {
			for _, name := range b.Names() {
				fmt.Printf("%s = %v\n", name, b.Value(name))
			}
			return nil
		})

	if err := shelly.FireAll(); err != nil {
		log.Fatalf("%v", err)
	}
}
