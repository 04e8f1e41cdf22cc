// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"errors"
	"fmt"
)

// ErrTruncated matches any *TruncatedInstructionError with errors.Is.
var ErrTruncated = errors.New("truncated instruction")

// A TruncatedInstructionError is returned when the last instruction in a
// buffer needs more operand bytes than the buffer holds.
type TruncatedInstructionError struct {
	Offset    int    // buffer offset of the opcode
	Address   uint16 // display address of the opcode
	Opcode    byte
	Name      string
	Need      int // instruction length in bytes
	Available int // bytes left in the buffer, including the opcode
}

func (e *TruncatedInstructionError) Error() string {
	return fmt.Sprintf("truncated instruction at $%04X (offset %d): %s ($%02X) needs %d bytes, %d available",
		e.Address, e.Offset, e.Name, e.Opcode, e.Need, e.Available)
}

func (e *TruncatedInstructionError) Is(target error) bool {
	return target == ErrTruncated
}
