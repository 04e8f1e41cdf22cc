// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging creates the leveled logger used by the disassembler's
// command-line tools.
//
// The level is read from the DIS6502_LOG_LEVEL environment variable
// (debug, info, warn or error; info by default) unless debug output is
// requested explicitly.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "DIS6502_LOG_LEVEL"

// New creates a logger writing to w.
func New(w io.Writer, debug bool) *log.Logger {
	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "dis6502",
	})
	lg.SetLevel(level(debug))
	return lg
}

// Discard returns a logger that drops all output.
func Discard() *log.Logger {
	return New(io.Discard, false)
}

func level(debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	switch strings.ToLower(os.Getenv(LevelEnv)) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
