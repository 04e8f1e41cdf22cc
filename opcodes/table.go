// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package opcodes loads 6502 instruction metadata (mnemonic, addressing
// mode, length, cycle cost and affected flags) from a CSV table.
//
// The table has a header row followed by one row per opcode:
//
//	opcode,mnemonic,addressing_mode,bytes,cycles,flags
//	169,LDA,Immediate,2,2,NZ
//
// The opcode column may be written in decimal, or in hexadecimal with a
// "0x" or "$" prefix. A copy of the NMOS 6502 table is embedded in the
// package and returned by Default.
package opcodes

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/dis6502/cpu"
)

//go:embed 6502ops.csv
var defaultTable []byte

// DefaultName is the source name reported for the embedded table.
const DefaultName = "6502ops.csv"

var columns = []string{"opcode", "mnemonic", "addressing_mode", "bytes", "cycles", "flags"}

// An Opcode holds the metadata of a single table row.
type Opcode struct {
	Opcode   byte     `json:"opcode"`
	Mnemonic string   `json:"mnemonic"`
	Mode     cpu.Mode `json:"mode"`
	Bytes    int      `json:"bytes"`
	Cycles   string   `json:"cycles"`
	Flags    string   `json:"flags"`
}

// A Table is an instruction metadata table. It is read-only once loaded and
// may be shared between goroutines.
type Table struct {
	source     string
	rows       []*Opcode
	byMnemonic map[string]*Opcode
	byOpcode   [256]*Opcode
}

// Load reads a metadata table from the CSV file at path. Any failure is
// reported as a *LoadError.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	return Read(file, path)
}

// Default returns the embedded NMOS 6502 metadata table.
func Default() (*Table, error) {
	return Read(bytes.NewReader(defaultTable), DefaultName)
}

// Read parses a metadata table from r. The name is used only in error
// messages.
func Read(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columns)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	switch {
	case err == io.EOF:
		return nil, &LoadError{Path: name, Err: fmt.Errorf("%w: empty table", ErrHeader)}
	case err != nil:
		return nil, csvError(name, err)
	}
	for i, c := range columns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), c) {
			line, _ := cr.FieldPos(i)
			return nil, &LoadError{
				Path:  name,
				Line:  line,
				Field: c,
				Err:   fmt.Errorf("%w: found column '%s'", ErrHeader, header[i]),
			}
		}
	}

	t := &Table{
		source:     name,
		byMnemonic: make(map[string]*Opcode),
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}

		line, _ := cr.FieldPos(0)
		op, field, err := parseRow(record)
		if err != nil {
			return nil, &LoadError{Path: name, Line: line, Field: field, Err: err}
		}
		if t.byOpcode[op.Opcode] != nil {
			return nil, &LoadError{
				Path:  name,
				Line:  line,
				Field: "opcode",
				Err:   fmt.Errorf("%w $%02X", ErrDuplicate, op.Opcode),
			}
		}

		t.rows = append(t.rows, op)
		t.byOpcode[op.Opcode] = op
		t.byMnemonic[op.Mnemonic] = op
	}

	return t, nil
}

func csvError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &LoadError{Path: name, Line: pe.Line, Err: pe.Err}
	}
	return &LoadError{Path: name, Err: err}
}

// Parse and structurally validate one row. On failure the name of the
// offending column is returned with the error.
func parseRow(record []string) (op *Opcode, field string, err error) {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	opcode, err := parseNumber(record[0])
	if err != nil {
		return nil, "opcode", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if opcode > 0xff {
		return nil, "opcode", fmt.Errorf("%w: opcode %d out of range", ErrInvalid, opcode)
	}

	mnemonic := strings.ToUpper(record[1])
	if mnemonic == "" {
		return nil, "mnemonic", fmt.Errorf("%w: empty mnemonic", ErrInvalid)
	}

	mode, err := cpu.ParseMode(record[2])
	if err != nil {
		return nil, "addressing_mode", fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	length, err := parseNumber(record[3])
	if err != nil {
		return nil, "bytes", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !validLength(mode, int(length)) {
		return nil, "bytes", fmt.Errorf("%w: %d bytes with mode %v", ErrInvalid, length, mode)
	}

	op = &Opcode{
		Opcode:   byte(opcode),
		Mnemonic: mnemonic,
		Mode:     mode,
		Bytes:    int(length),
		Cycles:   record[4],
		Flags:    record[5],
	}
	return op, "", nil
}

func parseNumber(s string) (uint64, error) {
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	return strconv.ParseUint(s, base, 16)
}

func validLength(mode cpu.Mode, length int) bool {
	if mode == cpu.IND && length == 2 {
		return true // 65C02 (zp)
	}
	return length == 1+mode.OperandLength()
}

// Source returns the name of the source the table was loaded from.
func (t *Table) Source() string {
	return t.source
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns all table rows in the order they were read.
func (t *Table) Rows() []*Opcode {
	return t.rows
}

// Lookup returns the row for a mnemonic. When a mnemonic appears on more
// than one row, the last row read wins.
func (t *Table) Lookup(mnemonic string) (*Opcode, bool) {
	op, ok := t.byMnemonic[strings.ToUpper(mnemonic)]
	return op, ok
}

// ByOpcode returns the row describing an opcode value, or nil if the
// table has no such row.
func (t *Table) ByOpcode(opcode byte) *Opcode {
	return t.byOpcode[opcode]
}

// Verify checks every row of the table against an instruction set. Rows
// that name an undefined opcode or disagree on mnemonic, mode or length
// are reported together in a single *LoadError wrapping ErrMismatch.
func (t *Table) Verify(set *cpu.InstructionSet) error {
	var errs []error
	for _, op := range t.rows {
		inst := set.Lookup(op.Opcode)
		switch {
		case !inst.Defined():
			errs = append(errs, fmt.Errorf("%w: $%02X %s is undefined on %v",
				ErrMismatch, op.Opcode, op.Mnemonic, set.Arch))
		case inst.Name != op.Mnemonic || inst.Mode != op.Mode || int(inst.Length) != op.Bytes:
			errs = append(errs, fmt.Errorf("%w: $%02X is %s %v (%d bytes), table has %s %v (%d bytes)",
				ErrMismatch, op.Opcode, inst.Name, inst.Mode, inst.Length, op.Mnemonic, op.Mode, op.Bytes))
		}
	}
	if len(errs) > 0 {
		return &LoadError{Path: t.source, Err: errors.Join(errs...)}
	}
	return nil
}
