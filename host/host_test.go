package host

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/dis6502/cpu"
	"github.com/beevik/dis6502/opcodes"
	"github.com/beevik/dis6502/rom"
)

var program = []byte{0xa9, 0x01, 0x8d, 0x00, 0x20, 0x4c, 0x00, 0x50}

func newTestHost(t *testing.T, img *rom.Image) *Host {
	t.Helper()
	table, err := opcodes.Default()
	if err != nil {
		t.Fatalf("loading opcode table: %v", err)
	}
	return New(Config{
		Arch:  cpu.NMOS,
		Table: table,
		Base:  0x5000,
		Image: img,
	})
}

func run(h *Host, script string) string {
	var out strings.Builder
	h.RunCommands(strings.NewReader(script), &out, false)
	return out.String()
}

func writeProgram(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.bin")
	if err := os.WriteFile(path, program, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func expectOutput(t *testing.T, out string, exp ...string) {
	t.Helper()
	for _, e := range exp {
		if !strings.Contains(out, e) {
			t.Errorf("output missing %q\ngot:\n%s", e, out)
		}
	}
}

func TestSession(t *testing.T) {
	path := writeProgram(t)
	h := newTestHost(t, nil)

	script := strings.Join([]string{
		"load " + path,
		"disassemble",
		"memory",
		"opcode $A9",
		"opcode $02",
		"opcode lda",
		"set compact true",
		"d $5002 1",
		"quit",
		"help",
	}, "\n")
	out := run(h, script)

	expectOutput(t, out,
		"Loaded 'prog.bin' to $5000..$5007",
		"5000 A9 01    LDA #$01\n",
		"5002 8D 00 20 STA $2000\n",
		"5005 4C 00 50 JMP $5000\n",
		"End of image.",
		"5000- A9 01 8D 00 20 4C 00 50   )... L.P",
		"$A9  LDA  Immediate",
		"$02  .db",
		"$AD  LDA  Absolute",
		"Setting updated.",
		"5002  STA $2000\n",
	)
	if strings.Contains(out, "Commands:") {
		t.Error("commands after quit were executed")
	}
}

func TestRepeatCommand(t *testing.T) {
	h := newTestHost(t, &rom.Image{Name: "prog.bin", Data: program})
	out := run(h, "d $5000 1\n\n\n")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	exp := []string{
		"5000 A9 01    LDA #$01",
		"5002 8D 00 20 STA $2000",
		"5005 4C 00 50 JMP $5000",
		"End of image.",
	}
	if len(lines) != len(exp) {
		t.Fatalf("line count incorrect. exp: %d, got: %d\n%s", len(exp), len(lines), out)
	}
	for i := range exp {
		if lines[i] != exp[i] {
			t.Errorf("line %d incorrect. exp: %q, got: %q", i, exp[i], lines[i])
		}
	}
}

func TestTruncatedImage(t *testing.T) {
	h := newTestHost(t, &rom.Image{Name: "short.bin", Data: []byte{0xea, 0xad, 0x00}})
	out := run(h, "d\n")
	expectOutput(t, out,
		"5000 EA       NOP\n",
		"5001 AD 00    LDA\t\t; truncated\n",
		"truncated",
		"End of image.",
	)
}

func TestLoadFailure(t *testing.T) {
	h := newTestHost(t, nil)
	out := run(h, "d\nload "+filepath.Join(t.TempDir(), "missing.bin")+"\nm\n")
	expectOutput(t, out, "No image loaded.", "failed to open")
	if h.image != nil {
		t.Error("image set after failed load")
	}
}

func TestLoadBase(t *testing.T) {
	path := writeProgram(t)
	h := newTestHost(t, nil)
	out := run(h, "load "+path+" $C000\nd\n")
	expectOutput(t, out,
		"Loaded 'prog.bin' to $C000..$C007",
		"C002 8D 00 20 STA $2000\n",
	)
}

func TestOutsideImage(t *testing.T) {
	h := newTestHost(t, &rom.Image{Name: "prog.bin", Data: program})
	out := run(h, "d $4FFF\nm $5008\n")
	expectOutput(t, out,
		"Address $4FFF is outside the loaded image.",
		"Address $5008 is outside the loaded image.",
	)
}

func TestUnknownCommand(t *testing.T) {
	h := newTestHost(t, nil)
	out := run(h, "frobnicate\nopcode\nopcode xyz\n")
	expectOutput(t, out,
		"Command not found.",
		"Syntax: opcode <byte>|<instruction>",
		"Instruction 'xyz'",
	)
}

func TestSettings(t *testing.T) {
	s := newSettings(0x5000)

	name, err := s.Find("disasm")
	if err != nil || name != "DisasmLines" {
		t.Errorf("Find(disasm) incorrect. got: %q, %v", name, err)
	}
	if _, err := s.Find("c"); err == nil {
		t.Error("Find(c) expected ambiguity error")
	}

	if err := s.Parse("base", "$6000"); err != nil {
		t.Fatal(err)
	}
	if s.BaseAddr != 0x6000 {
		t.Errorf("BaseAddr incorrect. exp: $6000, got: $%04X", s.BaseAddr)
	}
	if err := s.Parse("base", "$10000"); err == nil {
		t.Error("expected out of range error")
	}
	if err := s.Parse("compact", "on"); err != nil || !s.CompactMode {
		t.Errorf("CompactMode not set: %v", err)
	}
	if err := s.Parse("memdump", "128"); err != nil || s.MemDumpBytes != 128 {
		t.Errorf("MemDumpBytes incorrect. got: %d, %v", s.MemDumpBytes, err)
	}
	if err := s.Set("compact", 3); err == nil {
		t.Error("expected invalid type error")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		s   string
		v   uint64
		err bool
	}{
		{"$5000", 0x5000, false},
		{"0x5000", 0x5000, false},
		{"20480", 0x5000, false},
		{"$zz", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		v, err := ParseNumber(tc.s)
		if (err != nil) != tc.err || v != tc.v {
			t.Errorf("ParseNumber(%q) incorrect. exp: %d, got: %d (%v)", tc.s, tc.v, v, err)
		}
	}
}

func TestAddressExpressions(t *testing.T) {
	h := newTestHost(t, &rom.Image{Name: "prog.bin", Data: program})
	out := run(h, "d base+2 1\nd end-2\nd nope\nd base+disasmlines\nd base 0\n")
	expectOutput(t, out,
		"5002 8D 00 20 STA $2000\n",
		"5005 4C 00 50 JMP $5000\nEnd of image.",
		"unknown identifier 'nope'",
		"Address $5010 is outside the loaded image.",
		"count 0 out of range",
	)
}

func TestSetBaseAddr(t *testing.T) {
	path := writeProgram(t)
	h := newTestHost(t, nil)
	out := run(h, "load "+path+"\nset BaseAddr $6000\nd\nm\n")
	expectOutput(t, out,
		"Setting updated.",
		"6000 A9 01    LDA #$01\n",
		"6005 4C 00 50 JMP $5000\n",
		"6000- A9 01 8D 00 20 4C 00 50",
	)
	if strings.Contains(out, "outside the loaded image") {
		t.Errorf("cursor left at old base:\n%s", out)
	}

	// Cursors keep their position relative to the image.
	h = newTestHost(t, &rom.Image{Name: "prog.bin", Data: program})
	out = run(h, "d $5000 1\nset base $C000\nd\n")
	expectOutput(t, out, "C002 8D 00 20 STA $2000\n")
	if h.settings.NextMemDumpAddr != 0xc000 {
		t.Errorf("NextMemDumpAddr incorrect. exp: $C000, got: $%04X", h.settings.NextMemDumpAddr)
	}
}
