// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu describes the 6502 and 65C02 instruction sets: every opcode
// byte, its addressing mode, length and cycle cost.
package cpu

import (
	"fmt"
	"strings"
)

// Architecture selects the CPU chip: 6502 or 65c02
type Architecture byte

const (
	// NMOS 6502 CPU
	NMOS Architecture = iota

	// CMOS 65c02 CPU
	CMOS

	archCount
)

func (a Architecture) String() string {
	switch a {
	case NMOS:
		return "6502"
	case CMOS:
		return "65c02"
	default:
		return fmt.Sprintf("Architecture(%d)", byte(a))
	}
}

// ParseArchitecture converts an architecture name into an Architecture.
func ParseArchitecture(s string) (Architecture, error) {
	switch strings.ToLower(s) {
	case "nmos", "6502":
		return NMOS, nil
	case "cmos", "65c02":
		return CMOS, nil
	default:
		return 0, fmt.Errorf("unknown architecture '%s'", s)
	}
}
