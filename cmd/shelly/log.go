// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"log"
	"os"

	"github.com/yeetrun/shelly/pkg/cli"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for --log-file.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// newLogger returns the logger used for debug output. Without --debug it
// discards everything.
func newLogger(flags cli.GlobalFlags) (*log.Logger, func()) {
	if !flags.Debug {
		return log.New(io.Discard, "", 0), func() {}
	}
	if flags.LogFile == "" {
		return log.New(os.Stderr, "shelly: ", log.LstdFlags), func() {}
	}
	lj := &lumberjack.Logger{
		Filename:   flags.LogFile,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}
	return log.New(lj, "shelly: ", log.LstdFlags), func() {
		if err := lj.Close(); err != nil {
			log.Printf("closing log file: %v", err)
		}
	}
}
