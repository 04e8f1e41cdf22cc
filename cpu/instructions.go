// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"strings"
	"sync"
)

// An opsym identifies an instruction independently of its addressing mode.
// The set is closed: every opcode byte maps to exactly one opsym, and bytes
// with no defined instruction map to symDAT.
type opsym byte

const (
	symDAT opsym = iota // raw data byte
	symADC
	symAND
	symASL
	symBCC
	symBCS
	symBEQ
	symBIT
	symBMI
	symBNE
	symBPL
	symBRA
	symBRK
	symBVC
	symBVS
	symCLC
	symCLD
	symCLI
	symCLV
	symCMP
	symCPX
	symCPY
	symDEC
	symDEX
	symDEY
	symEOR
	symINC
	symINX
	symINY
	symJMP
	symJSR
	symLDA
	symLDX
	symLDY
	symLSR
	symNOP
	symORA
	symPHA
	symPHP
	symPHX
	symPHY
	symPLA
	symPLP
	symPLX
	symPLY
	symROL
	symROR
	symRTI
	symRTS
	symSBC
	symSEC
	symSED
	symSEI
	symSTA
	symSTX
	symSTY
	symSTZ
	symTAX
	symTAY
	symTRB
	symTSB
	symTSX
	symTXA
	symTXS
	symTYA
	symCount
)

var symNames = [symCount]string{
	symDAT: ".db",
	symADC: "ADC", symAND: "AND", symASL: "ASL", symBCC: "BCC",
	symBCS: "BCS", symBEQ: "BEQ", symBIT: "BIT", symBMI: "BMI",
	symBNE: "BNE", symBPL: "BPL", symBRA: "BRA", symBRK: "BRK",
	symBVC: "BVC", symBVS: "BVS", symCLC: "CLC", symCLD: "CLD",
	symCLI: "CLI", symCLV: "CLV", symCMP: "CMP", symCPX: "CPX",
	symCPY: "CPY", symDEC: "DEC", symDEX: "DEX", symDEY: "DEY",
	symEOR: "EOR", symINC: "INC", symINX: "INX", symINY: "INY",
	symJMP: "JMP", symJSR: "JSR", symLDA: "LDA", symLDX: "LDX",
	symLDY: "LDY", symLSR: "LSR", symNOP: "NOP", symORA: "ORA",
	symPHA: "PHA", symPHP: "PHP", symPHX: "PHX", symPHY: "PHY",
	symPLA: "PLA", symPLP: "PLP", symPLX: "PLX", symPLY: "PLY",
	symROL: "ROL", symROR: "ROR", symRTI: "RTI", symRTS: "RTS",
	symSBC: "SBC", symSEC: "SEC", symSED: "SED", symSEI: "SEI",
	symSTA: "STA", symSTX: "STX", symSTY: "STY", symSTZ: "STZ",
	symTAX: "TAX", symTAY: "TAY", symTRB: "TRB", symTSB: "TSB",
	symTSX: "TSX", symTXA: "TXA", symTXS: "TXS", symTYA: "TYA",
}

// Opcode data for one opcode byte. The zero value describes a raw data
// byte.
type opcodeData struct {
	sym      opsym // instruction identity
	mode     Mode  // addressing mode
	length   byte  // length of opcode + operand in bytes
	cycles   byte  // number of CPU cycles to execute command
	bpcycles byte  // additional CPU cycles if command crosses page boundary
	cmos     bool  // whether the opcode is defined only on the 65C02
}

// Every opcode byte, indexed by value. Entries left out are raw data bytes.
var data = [256]opcodeData{
	0x00: {symBRK, IMP, 1, 7, 0, false},
	0x01: {symORA, IDX, 2, 6, 0, false},
	0x04: {symTSB, ZPG, 2, 5, 0, true},
	0x05: {symORA, ZPG, 2, 3, 0, false},
	0x06: {symASL, ZPG, 2, 5, 0, false},
	0x08: {symPHP, IMP, 1, 3, 0, false},
	0x09: {symORA, IMM, 2, 2, 0, false},
	0x0a: {symASL, ACC, 1, 2, 0, false},
	0x0c: {symTSB, ABS, 3, 6, 0, true},
	0x0d: {symORA, ABS, 3, 4, 0, false},
	0x0e: {symASL, ABS, 3, 6, 0, false},
	0x10: {symBPL, REL, 2, 2, 1, false},
	0x11: {symORA, IDY, 2, 5, 1, false},
	0x12: {symORA, IND, 2, 5, 0, true},
	0x14: {symTRB, ZPG, 2, 5, 0, true},
	0x15: {symORA, ZPX, 2, 4, 0, false},
	0x16: {symASL, ZPX, 2, 6, 0, false},
	0x18: {symCLC, IMP, 1, 2, 0, false},
	0x19: {symORA, ABY, 3, 4, 1, false},
	0x1a: {symINC, ACC, 1, 2, 0, true},
	0x1c: {symTRB, ABS, 3, 6, 0, true},
	0x1d: {symORA, ABX, 3, 4, 1, false},
	0x1e: {symASL, ABX, 3, 7, 0, false},
	0x20: {symJSR, ABS, 3, 6, 0, false},
	0x21: {symAND, IDX, 2, 6, 0, false},
	0x24: {symBIT, ZPG, 2, 3, 0, false},
	0x25: {symAND, ZPG, 2, 3, 0, false},
	0x26: {symROL, ZPG, 2, 5, 0, false},
	0x28: {symPLP, IMP, 1, 4, 0, false},
	0x29: {symAND, IMM, 2, 2, 0, false},
	0x2a: {symROL, ACC, 1, 2, 0, false},
	0x2c: {symBIT, ABS, 3, 4, 0, false},
	0x2d: {symAND, ABS, 3, 4, 0, false},
	0x2e: {symROL, ABS, 3, 6, 0, false},
	0x30: {symBMI, REL, 2, 2, 1, false},
	0x31: {symAND, IDY, 2, 5, 1, false},
	0x32: {symAND, IND, 2, 5, 0, true},
	0x34: {symBIT, ZPX, 2, 4, 0, true},
	0x35: {symAND, ZPX, 2, 4, 0, false},
	0x36: {symROL, ZPX, 2, 6, 0, false},
	0x38: {symSEC, IMP, 1, 2, 0, false},
	0x39: {symAND, ABY, 3, 4, 1, false},
	0x3a: {symDEC, ACC, 1, 2, 0, true},
	0x3c: {symBIT, ABX, 3, 4, 1, true},
	0x3d: {symAND, ABX, 3, 4, 1, false},
	0x3e: {symROL, ABX, 3, 7, 0, false},
	0x40: {symRTI, IMP, 1, 6, 0, false},
	0x41: {symEOR, IDX, 2, 6, 0, false},
	0x45: {symEOR, ZPG, 2, 3, 0, false},
	0x46: {symLSR, ZPG, 2, 5, 0, false},
	0x48: {symPHA, IMP, 1, 3, 0, false},
	0x49: {symEOR, IMM, 2, 2, 0, false},
	0x4a: {symLSR, ACC, 1, 2, 0, false},
	0x4c: {symJMP, ABS, 3, 3, 0, false},
	0x4d: {symEOR, ABS, 3, 4, 0, false},
	0x4e: {symLSR, ABS, 3, 6, 0, false},
	0x50: {symBVC, REL, 2, 2, 1, false},
	0x51: {symEOR, IDY, 2, 5, 1, false},
	0x52: {symEOR, IND, 2, 5, 0, true},
	0x55: {symEOR, ZPX, 2, 4, 0, false},
	0x56: {symLSR, ZPX, 2, 6, 0, false},
	0x58: {symCLI, IMP, 1, 2, 0, false},
	0x59: {symEOR, ABY, 3, 4, 1, false},
	0x5a: {symPHY, IMP, 1, 3, 0, true},
	0x5d: {symEOR, ABX, 3, 4, 1, false},
	0x5e: {symLSR, ABX, 3, 7, 0, false},
	0x60: {symRTS, IMP, 1, 6, 0, false},
	0x61: {symADC, IDX, 2, 6, 0, false},
	0x64: {symSTZ, ZPG, 2, 3, 0, true},
	0x65: {symADC, ZPG, 2, 3, 0, false},
	0x66: {symROR, ZPG, 2, 5, 0, false},
	0x68: {symPLA, IMP, 1, 4, 0, false},
	0x69: {symADC, IMM, 2, 2, 0, false},
	0x6a: {symROR, ACC, 1, 2, 0, false},
	0x6c: {symJMP, IND, 3, 5, 0, false},
	0x6d: {symADC, ABS, 3, 4, 0, false},
	0x6e: {symROR, ABS, 3, 6, 0, false},
	0x70: {symBVS, REL, 2, 2, 1, false},
	0x71: {symADC, IDY, 2, 5, 1, false},
	0x72: {symADC, IND, 2, 5, 1, true},
	0x74: {symSTZ, ZPX, 2, 4, 0, true},
	0x75: {symADC, ZPX, 2, 4, 0, false},
	0x76: {symROR, ZPX, 2, 6, 0, false},
	0x78: {symSEI, IMP, 1, 2, 0, false},
	0x79: {symADC, ABY, 3, 4, 1, false},
	0x7a: {symPLY, IMP, 1, 4, 0, true},
	0x7c: {symJMP, IAX, 3, 6, 0, true},
	0x7d: {symADC, ABX, 3, 4, 1, false},
	0x7e: {symROR, ABX, 3, 7, 0, false},
	0x80: {symBRA, REL, 2, 2, 1, true},
	0x81: {symSTA, IDX, 2, 6, 0, false},
	0x84: {symSTY, ZPG, 2, 3, 0, false},
	0x85: {symSTA, ZPG, 2, 3, 0, false},
	0x86: {symSTX, ZPG, 2, 3, 0, false},
	0x88: {symDEY, IMP, 1, 2, 0, false},
	0x89: {symBIT, IMM, 2, 2, 0, true},
	0x8a: {symTXA, IMP, 1, 2, 0, false},
	0x8c: {symSTY, ABS, 3, 4, 0, false},
	0x8d: {symSTA, ABS, 3, 4, 0, false},
	0x8e: {symSTX, ABS, 3, 4, 0, false},
	0x90: {symBCC, REL, 2, 2, 1, false},
	0x91: {symSTA, IDY, 2, 6, 0, false},
	0x92: {symSTA, IND, 2, 5, 0, true},
	0x94: {symSTY, ZPX, 2, 4, 0, false},
	0x95: {symSTA, ZPX, 2, 4, 0, false},
	0x96: {symSTX, ZPY, 2, 4, 0, false},
	0x98: {symTYA, IMP, 1, 2, 0, false},
	0x99: {symSTA, ABY, 3, 5, 0, false},
	0x9a: {symTXS, IMP, 1, 2, 0, false},
	0x9c: {symSTZ, ABS, 3, 4, 0, true},
	0x9d: {symSTA, ABX, 3, 5, 0, false},
	0x9e: {symSTZ, ABX, 3, 5, 0, true},
	0xa0: {symLDY, IMM, 2, 2, 0, false},
	0xa1: {symLDA, IDX, 2, 6, 0, false},
	0xa2: {symLDX, IMM, 2, 2, 0, false},
	0xa4: {symLDY, ZPG, 2, 3, 0, false},
	0xa5: {symLDA, ZPG, 2, 3, 0, false},
	0xa6: {symLDX, ZPG, 2, 3, 0, false},
	0xa8: {symTAY, IMP, 1, 2, 0, false},
	0xa9: {symLDA, IMM, 2, 2, 0, false},
	0xaa: {symTAX, IMP, 1, 2, 0, false},
	0xac: {symLDY, ABS, 3, 4, 0, false},
	0xad: {symLDA, ABS, 3, 4, 0, false},
	0xae: {symLDX, ABS, 3, 4, 0, false},
	0xb0: {symBCS, REL, 2, 2, 1, false},
	0xb1: {symLDA, IDY, 2, 5, 1, false},
	0xb2: {symLDA, IND, 2, 5, 0, true},
	0xb4: {symLDY, ZPX, 2, 4, 0, false},
	0xb5: {symLDA, ZPX, 2, 4, 0, false},
	0xb6: {symLDX, ZPY, 2, 4, 0, false},
	0xb8: {symCLV, IMP, 1, 2, 0, false},
	0xb9: {symLDA, ABY, 3, 4, 1, false},
	0xba: {symTSX, IMP, 1, 2, 0, false},
	0xbc: {symLDY, ABX, 3, 4, 1, false},
	0xbd: {symLDA, ABX, 3, 4, 1, false},
	0xbe: {symLDX, ABY, 3, 4, 1, false},
	0xc0: {symCPY, IMM, 2, 2, 0, false},
	0xc1: {symCMP, IDX, 2, 6, 0, false},
	0xc4: {symCPY, ZPG, 2, 3, 0, false},
	0xc5: {symCMP, ZPG, 2, 3, 0, false},
	0xc6: {symDEC, ZPG, 2, 5, 0, false},
	0xc8: {symINY, IMP, 1, 2, 0, false},
	0xc9: {symCMP, IMM, 2, 2, 0, false},
	0xca: {symDEX, IMP, 1, 2, 0, false},
	0xcc: {symCPY, ABS, 3, 4, 0, false},
	0xcd: {symCMP, ABS, 3, 4, 0, false},
	0xce: {symDEC, ABS, 3, 6, 0, false},
	0xd0: {symBNE, REL, 2, 2, 1, false},
	0xd1: {symCMP, IDY, 2, 5, 1, false},
	0xd2: {symCMP, IND, 2, 5, 0, true},
	0xd5: {symCMP, ZPX, 2, 4, 0, false},
	0xd6: {symDEC, ZPX, 2, 6, 0, false},
	0xd8: {symCLD, IMP, 1, 2, 0, false},
	0xd9: {symCMP, ABY, 3, 4, 1, false},
	0xda: {symPHX, IMP, 1, 3, 0, true},
	0xdd: {symCMP, ABX, 3, 4, 1, false},
	0xde: {symDEC, ABX, 3, 7, 0, false},
	0xe0: {symCPX, IMM, 2, 2, 0, false},
	0xe1: {symSBC, IDX, 2, 6, 0, false},
	0xe4: {symCPX, ZPG, 2, 3, 0, false},
	0xe5: {symSBC, ZPG, 2, 3, 0, false},
	0xe6: {symINC, ZPG, 2, 5, 0, false},
	0xe8: {symINX, IMP, 1, 2, 0, false},
	0xe9: {symSBC, IMM, 2, 2, 0, false},
	0xea: {symNOP, IMP, 1, 2, 0, false},
	0xec: {symCPX, ABS, 3, 4, 0, false},
	0xed: {symSBC, ABS, 3, 4, 0, false},
	0xee: {symINC, ABS, 3, 6, 0, false},
	0xf0: {symBEQ, REL, 2, 2, 1, false},
	0xf1: {symSBC, IDY, 2, 5, 1, false},
	0xf2: {symSBC, IND, 2, 5, 1, true},
	0xf5: {symSBC, ZPX, 2, 4, 0, false},
	0xf6: {symINC, ZPX, 2, 6, 0, false},
	0xf8: {symSED, IMP, 1, 2, 0, false},
	0xf9: {symSBC, ABY, 3, 4, 1, false},
	0xfa: {symPLX, IMP, 1, 4, 0, true},
	0xfd: {symSBC, ABX, 3, 4, 1, false},
	0xfe: {symINC, ABX, 3, 7, 0, false},
}

// An Instruction describes a CPU instruction, including its name,
// its addressing mode, its opcode value, its operand size, and its CPU cycle
// cost.
type Instruction struct {
	Name     string // all-caps name of the instruction, or ".db"
	Mode     Mode   // addressing mode
	Opcode   byte   // hexadecimal opcode value
	Length   byte   // combined size of opcode and operand, in bytes
	Cycles   byte   // number of CPU cycles to execute the instruction
	BPCycles byte   // additional cycles required if boundary page crossed
	sym      opsym
}

// Defined returns true if the opcode names a real instruction on the
// instruction set's architecture.
func (inst *Instruction) Defined() bool {
	return inst.sym != symDAT
}

// IsBranch returns true for the relative branch instructions.
func (inst *Instruction) IsBranch() bool {
	switch inst.sym {
	case symBCC, symBCS, symBEQ, symBMI, symBNE, symBPL, symBVC, symBVS, symBRA:
		return true
	default:
		return false
	}
}

// An InstructionSet maps every opcode byte to an instruction for one CPU
// architecture. It is never modified once built.
type InstructionSet struct {
	Arch         Architecture
	instructions [256]Instruction          // all instructions by opcode
	variants     map[string][]*Instruction // variants of each instruction
}

// Lookup retrieves the instruction corresponding to the requested opcode.
// Opcodes with no defined instruction return a one-byte ".db" entry.
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return &s.instructions[opcode]
}

// Variants returns all instructions whose name matches the provided
// string, one per addressing mode.
func (s *InstructionSet) Variants(name string) []*Instruction {
	return s.variants[strings.ToUpper(name)]
}

// Names returns the names of all defined instructions in alphabetical
// order.
func (s *InstructionSet) Names() []string {
	var names []string
	for sym := symADC; sym < symCount; sym++ {
		if _, ok := s.variants[symNames[sym]]; ok {
			names = append(names, symNames[sym])
		}
	}
	return names
}

// Create an instruction set for a CPU architecture.
func newInstructionSet(arch Architecture) *InstructionSet {
	set := &InstructionSet{
		Arch:     arch,
		variants: make(map[string][]*Instruction),
	}

	for i, d := range data {
		inst := &set.instructions[i]
		inst.Opcode = byte(i)

		if d.sym == symDAT || (d.cmos && arch != CMOS) {
			inst.sym = symDAT
			inst.Name = symNames[symDAT]
			inst.Mode = DAT
			inst.Length = 1
			continue
		}

		inst.sym = d.sym
		inst.Name = symNames[d.sym]
		inst.Mode = d.mode
		inst.Length = d.length
		inst.Cycles = d.cycles
		inst.BPCycles = d.bpcycles
		set.variants[inst.Name] = append(set.variants[inst.Name], inst)
	}
	return set
}

var (
	instructionSets    [archCount]*InstructionSet
	instructionSetOnce [archCount]sync.Once
)

// GetInstructionSet returns the instruction set for the requested CPU
// architecture. Sets are built on first use and may be shared freely.
func GetInstructionSet(arch Architecture) *InstructionSet {
	instructionSetOnce[arch].Do(func() {
		instructionSets[arch] = newInstructionSet(arch)
	})
	return instructionSets[arch]
}
