// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 6502 instruction set
// disassembler.
//
// The disassembler reads a buffer of machine code strictly in sequence,
// starting at offset 0. Each instruction is decoded into a Line, and the
// cursor advances by the instruction's length. Bytes that do not encode an
// instruction are decoded as one-byte ".db" data lines, so every pass over
// a buffer makes progress and ends at the buffer's last byte.
package disasm

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/beevik/dis6502/cpu"
)

// DefaultBase is the default display address of the first buffer byte.
const DefaultBase uint16 = 0x5000

// ErrCursorOutOfRange is returned when a decode is requested at an offset
// outside the buffer.
var ErrCursorOutOfRange = errors.New("cursor out of range")

// Disassembler formatting for addressing modes
var modeFormat = [...]string{
	cpu.IMM: "#$%s",
	cpu.REL: "$%s",
	cpu.ZPG: "$%s",
	cpu.ZPX: "$%s,X",
	cpu.ZPY: "$%s,Y",
	cpu.ABS: "$%s",
	cpu.ABX: "$%s,X",
	cpu.ABY: "$%s,Y",
	cpu.IND: "($%s)",
	cpu.IDX: "($%s,X)",
	cpu.IDY: "($%s),Y",
	cpu.IAX: "($%s,X)",
	cpu.DAT: "$%s",
}

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of the little-endian byte
// slice. The last byte is displayed first, so a two-byte operand read as
// (low, high) is shown as a single high-byte-first address.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// A Disassembler decodes buffers of machine code for one instruction set.
// It holds no per-pass state and may be used by several goroutines.
type Disassembler struct {
	set  *cpu.InstructionSet
	base uint16
}

// New creates a disassembler for an instruction set. The first byte of
// every buffer is displayed at the base address.
func New(set *cpu.InstructionSet, base uint16) *Disassembler {
	return &Disassembler{set: set, base: base}
}

// Address returns the display address of a buffer offset. Addresses wrap
// at the end of the 64K address space.
func (d *Disassembler) Address(offset int) uint16 {
	return uint16(int(d.base) + offset)
}

// DecodeOne decodes the instruction at offset 'cursor' of the buffer. The
// returned line's Length is the number of bytes to advance the cursor.
//
// If the instruction's operand runs past the end of the buffer, DecodeOne
// returns a *TruncatedInstructionError along with a partial line holding
// the bytes that are available.
func (d *Disassembler) DecodeOne(buf []byte, cursor int) (Line, error) {
	if cursor < 0 || cursor >= len(buf) {
		return Line{}, fmt.Errorf("%w: offset %d, buffer length %d", ErrCursorOutOfRange, cursor, len(buf))
	}

	inst := d.set.Lookup(buf[cursor])
	l := Line{
		Offset:   cursor,
		Address:  d.Address(cursor),
		Mnemonic: inst.Name,
		Mode:     inst.Mode,
		Length:   int(inst.Length),
		Branch:   inst.IsBranch(),
	}

	end := cursor + l.Length
	if end > len(buf) {
		l.Bytes = buf[cursor:]
		l.Truncated = true
		return l, &TruncatedInstructionError{
			Offset:    cursor,
			Address:   l.Address,
			Opcode:    inst.Opcode,
			Name:      inst.Name,
			Need:      l.Length,
			Available: len(buf) - cursor,
		}
	}

	l.Bytes = buf[cursor:end]
	operand := l.Bytes[1:]
	switch inst.Mode {
	case cpu.IMP:
	case cpu.ACC:
		l.Operand = "A"
	case cpu.DAT:
		l.Operand = fmt.Sprintf(modeFormat[cpu.DAT], hexString(l.Bytes))
	default:
		l.Operand = fmt.Sprintf(modeFormat[inst.Mode], hexString(operand))
	}

	if l.Branch {
		// The operand is a signed displacement from the following
		// instruction.
		l.Target = uint16(int(l.Address) + l.Length + int(int8(operand[0])))
	}

	return l, nil
}

// Walk decodes the whole buffer, calling fn with each line in address
// order. A truncated final instruction is passed to fn as a partial line
// before its *TruncatedInstructionError is returned. Walk stops early if
// fn returns an error.
func (d *Disassembler) Walk(buf []byte, fn func(l Line) error) error {
	for cursor := 0; cursor < len(buf); {
		l, err := d.DecodeOne(buf, cursor)
		if err != nil {
			if l.Truncated {
				if ferr := fn(l); ferr != nil {
					return ferr
				}
			}
			return err
		}
		if err := fn(l); err != nil {
			return err
		}
		cursor += l.Length
	}
	return nil
}

// Disassemble decodes the whole buffer and returns its lines in address
// order. On a truncated final instruction the lines decoded so far,
// including the partial line, are returned with the error.
func (d *Disassembler) Disassemble(buf []byte) ([]Line, error) {
	lines := make([]Line, 0, len(buf)/2+1)
	err := d.Walk(buf, func(l Line) error {
		lines = append(lines, l)
		return nil
	})
	return lines, err
}

// Write disassembles the buffer and writes the listing to w, one line at
// a time.
func (d *Disassembler) Write(w io.Writer, buf []byte) error {
	bw := bufio.NewWriter(w)
	err := d.Walk(buf, func(l Line) error {
		_, err := fmt.Fprintln(bw, l.String())
		return err
	})
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	return err
}
