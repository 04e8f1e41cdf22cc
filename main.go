// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dis6502 disassembles raw 6502 machine code.
//
// Every byte of the input, from the first, is decoded as an instruction
// and printed as a listing line holding the instruction's address, its
// raw bytes, and its assembly text. Relative branches are annotated with
// the absolute address of their target.
package main

import (
	"context"
	"os"

	"github.com/beevik/term"
	"github.com/charmbracelet/fang"
)

func main() {
	root := newRootCmd()

	var err error
	if isTerminal(os.Stdout) {
		err = fang.Execute(context.Background(), root,
			fang.WithNotifySignal(os.Interrupt))
	} else {
		// Skip fang's styled help and error output when piped.
		err = root.Execute()
	}
	if err != nil {
		os.Exit(1)
	}
}

// Return true if v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

