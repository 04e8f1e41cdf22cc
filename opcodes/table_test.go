package opcodes_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/dis6502/cpu"
	"github.com/beevik/dis6502/opcodes"
	"github.com/google/go-cmp/cmp"
)

const header = "opcode,mnemonic,addressing_mode,bytes,cycles,flags\n"

func readTable(t *testing.T, csv string) (*opcodes.Table, error) {
	t.Helper()
	return opcodes.Read(strings.NewReader(csv), "test.csv")
}

func expectLoadError(t *testing.T, err error, line int, target error) {
	t.Helper()
	var le *opcodes.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got: %v", err)
	}
	if line != 0 && le.Line != line {
		t.Errorf("LoadError line incorrect. exp: %d, got: %d (%v)", line, le.Line, err)
	}
	if target != nil && !errors.Is(err, target) {
		t.Errorf("LoadError does not wrap %v: %v", target, err)
	}
}

func TestDefault(t *testing.T) {
	table, err := opcodes.Default()
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 151 {
		t.Errorf("row count incorrect. exp: 151, got: %d", table.Len())
	}
	if table.Source() != opcodes.DefaultName {
		t.Errorf("source incorrect. got: %s", table.Source())
	}

	for _, arch := range []cpu.Architecture{cpu.NMOS, cpu.CMOS} {
		if err := table.Verify(cpu.GetInstructionSet(arch)); err != nil {
			t.Errorf("default table does not verify on %v: %v", arch, err)
		}
	}

	exp := &opcodes.Opcode{
		Opcode:   0xa9,
		Mnemonic: "LDA",
		Mode:     cpu.IMM,
		Bytes:    2,
		Cycles:   "2",
		Flags:    "NZ",
	}
	if diff := cmp.Diff(exp, table.ByOpcode(0xa9)); diff != "" {
		t.Errorf("$A9 mismatch (-want +got):\n%s", diff)
	}
	if table.ByOpcode(0x02) != nil {
		t.Error("undefined opcode $02 has a row")
	}
}

func TestReadNumberFormats(t *testing.T) {
	table, err := readTable(t, header+
		"169,LDA,Immediate,2,2,NZ\n"+
		"0xAD,LDA,Absolute,3,4,NZ\n"+
		"$BD, LDA, \"Absolute,X\", 3, 4*, NZ\n")
	if err != nil {
		t.Fatal(err)
	}

	got := []byte{}
	for _, r := range table.Rows() {
		got = append(got, r.Opcode)
	}
	if diff := cmp.Diff([]byte{0xa9, 0xad, 0xbd}, got); diff != "" {
		t.Errorf("opcodes mismatch (-want +got):\n%s", diff)
	}
	if r := table.ByOpcode(0xbd); r.Mode != cpu.ABX || r.Cycles != "4*" {
		t.Errorf("$BD row incorrect: %+v", r)
	}
}

func TestLookupLastWins(t *testing.T) {
	table, err := readTable(t, header+
		"169,LDA,Immediate,2,2,NZ\n"+
		"173,lda,Absolute,3,4,NZ\n")
	if err != nil {
		t.Fatal(err)
	}
	op, ok := table.Lookup("LDA")
	if !ok {
		t.Fatal("LDA not found")
	}
	if op.Opcode != 0xad {
		t.Errorf("LDA lookup incorrect. exp: $AD, got: $%02X", op.Opcode)
	}
	if _, ok := table.Lookup("STA"); ok {
		t.Error("STA found in table")
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		csv    string
		line   int
		target error
	}{
		{"empty", "", 0, opcodes.ErrHeader},
		{"bad header", "op,mnemonic,addressing_mode,bytes,cycles,flags\n", 1, opcodes.ErrHeader},
		{"columns", header + "169,LDA,Immediate,2,2\n", 2, nil},
		{"opcode", header + "LDA,LDA,Immediate,2,2,NZ\n", 2, opcodes.ErrInvalid},
		{"opcode range", header + "300,LDA,Immediate,2,2,NZ\n", 2, opcodes.ErrInvalid},
		{"mnemonic", header + "169,,Immediate,2,2,NZ\n", 2, opcodes.ErrInvalid},
		{"mode", header + "169,LDA,Sideways,2,2,NZ\n", 2, opcodes.ErrInvalid},
		{"bytes", header + "169,LDA,Immediate,two,2,NZ\n", 2, opcodes.ErrInvalid},
		{"opcode hex", header + "$zz,LDA,Immediate,2,2,NZ\n", 2, opcodes.ErrInvalid},
		{"length", header + "169,LDA,Immediate,3,2,NZ\n", 2, opcodes.ErrInvalid},
		{"duplicate", header + "169,LDA,Immediate,2,2,NZ\n169,LDA,Immediate,2,2,NZ\n", 3, opcodes.ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readTable(t, tt.csv)
			expectLoadError(t, err, tt.line, tt.target)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := opcodes.Load(filepath.Join(t.TempDir(), "missing.csv"))
	expectLoadError(t, err, 0, os.ErrNotExist)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.csv")
	if err := os.WriteFile(path, []byte(header+"234,NOP,Implied,1,2,-\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := opcodes.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 1 || table.ByOpcode(0xea).Mnemonic != "NOP" {
		t.Errorf("table incorrect: %+v", table.Rows())
	}
}

func TestVerifyMismatch(t *testing.T) {
	table, err := readTable(t, header+
		"169,LDA,Immediate,2,2,NZ\n"+
		"2,KIL,Implied,1,2,-\n"+
		"173,STA,Absolute,3,4,-\n")
	if err != nil {
		t.Fatal(err)
	}
	err = table.Verify(cpu.GetInstructionSet(cpu.NMOS))
	expectLoadError(t, err, 0, opcodes.ErrMismatch)
	if !strings.Contains(err.Error(), "$02") || !strings.Contains(err.Error(), "$AD") {
		t.Errorf("mismatch error incomplete: %v", err)
	}
}
