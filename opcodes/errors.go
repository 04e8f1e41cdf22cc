// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opcodes

import (
	"errors"
	"fmt"
)

// Errors wrapped by a LoadError.
var (
	ErrHeader    = errors.New("invalid header")
	ErrDuplicate = errors.New("duplicate opcode")
	ErrInvalid   = errors.New("invalid row")
	ErrMismatch  = errors.New("opcode does not match instruction set")
)

// A LoadError is returned when an instruction metadata table cannot be
// opened, is malformed, or disagrees with the instruction set it is
// verified against.
type LoadError struct {
	Path  string // name of the metadata source
	Line  int    // line of the offending row, or 0
	Field string // column of the offending value, if any
	Err   error
}

func (e *LoadError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("opcodes: %s:%d: %s: %v", e.Path, e.Line, e.Field, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("opcodes: %s:%d: %v", e.Path, e.Line, e.Err)
	default:
		return fmt.Sprintf("opcodes: %s: %v", e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
