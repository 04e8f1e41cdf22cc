package colorize_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/beevik/dis6502/colorize"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestListingPreservesText(t *testing.T) {
	lines := []string{
		"5000 A9 01    LDA #$01",
		"5002 D0 FC    BNE $FC\t\t; $5000",
		"5004 02       .db $02",
	}
	for _, line := range lines {
		out, err := colorize.Listing(line)
		if err != nil {
			t.Fatal(err)
		}
		plain := strings.TrimRight(ansi.ReplaceAllString(out, ""), "\n")
		if plain != line {
			t.Errorf("colorized text changed.\nexp: %q\ngot: %q", line, plain)
		}
	}
}

func TestEnabled(t *testing.T) {
	t.Setenv(colorize.NoColorEnv, "")
	tests := []struct {
		mode     colorize.Mode
		terminal bool
		exp      bool
	}{
		{colorize.Auto, true, true},
		{colorize.Auto, false, false},
		{colorize.Always, false, true},
		{colorize.Never, true, false},
	}
	for _, tt := range tests {
		if got := colorize.Enabled(tt.mode, tt.terminal); got != tt.exp {
			t.Errorf("Enabled(%s, %v) incorrect. exp: %v, got: %v", tt.mode, tt.terminal, tt.exp, got)
		}
	}

	t.Setenv(colorize.NoColorEnv, "1")
	if colorize.Enabled(colorize.Always, true) {
		t.Error("colors enabled despite no-color environment")
	}
}
