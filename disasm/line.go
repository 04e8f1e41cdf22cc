// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"fmt"
	"strings"

	"github.com/beevik/dis6502/cpu"
)

// A Line is a single decoded instruction.
type Line struct {
	Offset    int      // offset of the opcode within the buffer
	Address   uint16   // display address of the opcode
	Bytes     []byte   // opcode and operand bytes
	Mnemonic  string   // instruction name, or ".db" for a data byte
	Operand   string   // formatted operand, empty for implied instructions
	Mode      cpu.Mode // addressing mode
	Length    int      // instruction length in bytes (1-3)
	Branch    bool     // relative branch instruction
	Target    uint16   // branch target address, valid if Branch is set
	Truncated bool     // operand runs past the end of the buffer
}

// Text returns the assembly text of the instruction, e.g. "LDA #$01".
func (l Line) Text() string {
	if l.Operand == "" || l.Truncated {
		return l.Mnemonic
	}
	return l.Mnemonic + " " + l.Operand
}

// Comment returns the listing comment for the line: the branch target for
// branches, a marker for truncated instructions, or the empty string.
func (l Line) Comment() string {
	switch {
	case l.Truncated:
		return "truncated"
	case l.Branch:
		return fmt.Sprintf("$%04X", l.Target)
	default:
		return ""
	}
}

// String formats the line as a listing line:
//
//	AAAA OO PP QQ TEXT[\t\t; COMMENT]
//
// Byte slots the instruction doesn't use are filled with blanks.
func (l Line) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04X ", l.Address)
	for i := 0; i < 3; i++ {
		if i < len(l.Bytes) {
			fmt.Fprintf(&b, "%02X ", l.Bytes[i])
		} else {
			b.WriteString("   ")
		}
	}
	b.WriteString(l.Text())
	l.writeComment(&b)
	return b.String()
}

// Compact formats the line without its byte columns.
func (l Line) Compact() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04X  %s", l.Address, l.Text())
	l.writeComment(&b)
	return b.String()
}

func (l Line) writeComment(b *strings.Builder) {
	if c := l.Comment(); c != "" {
		b.WriteString("\t\t; ")
		b.WriteString(c)
	}
}
