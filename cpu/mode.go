// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"strings"
)

// Mode describes a memory addressing mode.
type Mode byte

// All possible memory addressing modes
const (
	IMM Mode = iota // Immediate
	IMP             // Implied (no operand)
	REL             // Relative
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Indirect,X)
	IDY             // (Indirect),Y
	ACC             // Accumulator (no operand)
	IAX             // (Absolute,X), 65C02 JMP only
	DAT             // Raw data byte (undefined opcode)
	modeCount
)

var modeNames = [modeCount]string{
	IMM: "Immediate",
	IMP: "Implied",
	REL: "Relative",
	ZPG: "Zero Page",
	ZPX: "Zero Page,X",
	ZPY: "Zero Page,Y",
	ABS: "Absolute",
	ABX: "Absolute,X",
	ABY: "Absolute,Y",
	IND: "Indirect",
	IDX: "(Indirect,X)",
	IDY: "(Indirect),Y",
	ACC: "Accumulator",
	IAX: "(Absolute,X)",
	DAT: "Data",
}

func (m Mode) String() string {
	if m < modeCount {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", byte(m))
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Accepted spellings, keyed by a normalized form with case, whitespace,
// underscores and hyphens removed.
var modeAliases = map[string]Mode{
	"imm":              IMM,
	"immediate":        IMM,
	"imp":              IMP,
	"implied":          IMP,
	"implicit":         IMP,
	"rel":              REL,
	"relative":         REL,
	"zpg":              ZPG,
	"zp":               ZPG,
	"zeropage":         ZPG,
	"zpx":              ZPX,
	"zeropage,x":       ZPX,
	"zeropagex":        ZPX,
	"zpy":              ZPY,
	"zeropage,y":       ZPY,
	"zeropagey":        ZPY,
	"abs":              ABS,
	"absolute":         ABS,
	"abx":              ABX,
	"absolute,x":       ABX,
	"absolutex":        ABX,
	"aby":              ABY,
	"absolute,y":       ABY,
	"absolutey":        ABY,
	"ind":              IND,
	"indirect":         IND,
	"(indirect)":       IND,
	"idx":              IDX,
	"(indirect,x)":     IDX,
	"indirectx":        IDX,
	"indexedindirect":  IDX,
	"idy":              IDY,
	"(indirect),y":     IDY,
	"indirecty":        IDY,
	"indirectindexed":  IDY,
	"acc":              ACC,
	"accumulator":      ACC,
	"iax":              IAX,
	"(absolute,x)":     IAX,
	"absoluteindirect": IAX,
}

// ParseMode converts the name of an addressing mode into a Mode. Names are
// matched without regard to case, whitespace, underscores or hyphens, so
// "Zero Page,X", "zero_page,x" and "ZPX" are all accepted.
func ParseMode(s string) (Mode, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(s))

	if m, ok := modeAliases[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown addressing mode '%s'", s)
}

// OperandLength returns the number of operand bytes that follow the opcode
// for instructions using this mode. The 65C02 zero page indirect form of
// IND is the only case where the length depends on the instruction, so
// IND reports the two-byte JMP operand.
func (m Mode) OperandLength() int {
	switch m {
	case IMP, ACC, DAT:
		return 0
	case IMM, REL, ZPG, ZPX, ZPY, IDX, IDY:
		return 1
	default:
		return 2
	}
}
