package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/dis6502/disasm"
	"github.com/beevik/dis6502/opcodes"
	"github.com/beevik/dis6502/rom"
	"github.com/google/go-cmp/cmp"
)

var program = []byte{0xa9, 0x01, 0x8d, 0x00, 0x20, 0x4c, 0x00, 0x50}

const programListing = "5000 A9 01    LDA #$01\n" +
	"5002 8D 00 20 STA $2000\n" +
	"5005 4C 00 50 JMP $5000\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(bytes.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func TestListing(t *testing.T) {
	path := writeFile(t, "prog.bin", program)
	out, err := execute(t, nil, "--color", "never", path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(programListing, out); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}
}

func TestListingStdin(t *testing.T) {
	out, err := execute(t, program, "--color", "never")
	if err != nil {
		t.Fatal(err)
	}
	if out != programListing {
		t.Errorf("listing incorrect.\nexp:\n%s\ngot:\n%s", programListing, out)
	}
}

func TestListingBase(t *testing.T) {
	path := writeFile(t, "prog.bin", []byte{0xd0, 0xfe})
	out, err := execute(t, nil, "--color=never", "--base", "0xC000", path)
	if err != nil {
		t.Fatal(err)
	}
	exp := "C000 D0 FE    BNE $FE\t\t; $C000\n"
	if out != exp {
		t.Errorf("listing incorrect. exp: %q, got: %q", exp, out)
	}
}

func TestListingJSON(t *testing.T) {
	path := writeFile(t, "prog.bin", []byte{0xa9, 0x01, 0x10, 0x02, 0x0a})
	out, err := execute(t, nil, "--json", path)
	if err != nil {
		t.Fatal(err)
	}

	var got []listingRecord
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var r listingRecord
		if err := dec.Decode(&r); err != nil {
			t.Fatal(err)
		}
		got = append(got, r)
	}

	exp := []listingRecord{
		{Address: "5000", Offset: 0, Bytes: "A9 01", Mnemonic: "LDA", Operand: "#$01", Mode: "Immediate", Length: 2},
		{Address: "5002", Offset: 2, Bytes: "10 02", Mnemonic: "BPL", Operand: "$02", Mode: "Relative", Length: 2, Target: "5006"},
		{Address: "5004", Offset: 4, Bytes: "0A", Mnemonic: "ASL", Operand: "A", Mode: "Accumulator", Length: 1},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestTruncatedExit(t *testing.T) {
	path := writeFile(t, "short.bin", []byte{0xea, 0xa9})
	out, err := execute(t, nil, "--color", "never", path)

	var te *disasm.TruncatedInstructionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TruncatedInstructionError, got %v", err)
	}
	if te.Offset != 1 || te.Need != 2 || te.Available != 1 {
		t.Errorf("error fields incorrect: %+v", te)
	}
	exp := "5000 EA       NOP\n5001 A9       LDA\t\t; truncated\n"
	if out != exp {
		t.Errorf("listing incorrect. exp: %q, got: %q", exp, out)
	}
}

func TestMissingOpcodes(t *testing.T) {
	path := writeFile(t, "prog.bin", program)
	_, err := execute(t, nil, "--opcodes", filepath.Join(t.TempDir(), "none.csv"), path)

	var le *opcodes.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *opcodes.LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist cause, got %v", err)
	}
}

func TestBadOpcodes(t *testing.T) {
	csv := "opcode,mnemonic,addressing_mode,bytes,cycles,flags\n169,LDA,Absolute,3,4,NZ\n"
	table := writeFile(t, "bad.csv", []byte(csv))
	path := writeFile(t, "prog.bin", program)
	_, err := execute(t, nil, "-o", table, path)
	if !errors.Is(err, opcodes.ErrMismatch) {
		t.Errorf("expected mismatch error, got %v", err)
	}
}

func TestMissingBinary(t *testing.T) {
	_, err := execute(t, nil, filepath.Join(t.TempDir(), "none.bin"))

	var oe *rom.OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("expected *rom.OpenError, got %v", err)
	}
}

func TestInvalidFlags(t *testing.T) {
	path := writeFile(t, "prog.bin", program)
	tests := [][]string{
		{"--arch", "z80", path},
		{"--base", "$10000", path},
		{"--color", "sometimes", path},
	}
	for _, args := range tests {
		if _, err := execute(t, nil, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestCMOS(t *testing.T) {
	path := writeFile(t, "prog.bin", []byte{0x80, 0x00, 0x1a})
	out, err := execute(t, nil, "--color", "never", "--arch", "cmos", path)
	if err != nil {
		t.Fatal(err)
	}
	exp := "5000 80 00    BRA $00\t\t; $5002\n5002 1A       INC A\n"
	if out != exp {
		t.Errorf("listing incorrect. exp: %q, got: %q", exp, out)
	}
}

func TestScript(t *testing.T) {
	path := writeFile(t, "prog.bin", program)
	script := writeFile(t, "session.txt", []byte("d $5002 1\nm $5000 2\nquit\n"))
	out, err := execute(t, nil, "--color", "never", "--script", script, path)
	if err != nil {
		t.Fatal(err)
	}
	for _, exp := range []string{"5002 8D 00 20 STA $2000\n", "5000- A9 01"} {
		if !strings.Contains(out, exp) {
			t.Errorf("output missing %q\ngot:\n%s", exp, out)
		}
	}
}

func TestSchema(t *testing.T) {
	out, err := execute(t, nil, "schema")
	if err != nil {
		t.Fatal(err)
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	for _, field := range []string{`"address"`, `"mnemonic"`, `"truncated"`} {
		if !strings.Contains(out, field) {
			t.Errorf("schema missing %s", field)
		}
	}
}

func TestOpcodesCmd(t *testing.T) {
	out, err := execute(t, nil, "opcodes")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 151 {
		t.Errorf("row count incorrect. exp: 151, got: %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "$00  BRK  Implied") {
		t.Errorf("first row incorrect: %q", lines[0])
	}
}
