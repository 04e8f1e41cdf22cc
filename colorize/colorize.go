// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colorize adds terminal colors to disassembly listings.
package colorize

import (
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// NoColorEnv disables colors when set to any value.
const NoColorEnv = "DIS6502_NO_COLOR"

// Style is the listing color scheme.
var Style = styles.Register(chroma.MustNewStyle("dis6502", chroma.StyleEntries{
	chroma.Text:             "#D0D0D0",
	chroma.Comment:          "#6A9955",
	chroma.Keyword:          "#569CD6",
	chroma.KeywordPseudo:    "#C586C0",
	chroma.NameBuiltin:      "#4EC9B0",
	chroma.NameVariable:     "#4EC9B0",
	chroma.NameLabel:        "#DCDCAA",
	chroma.LiteralNumber:    "#B5CEA8",
	chroma.LiteralNumberHex: "#B5CEA8",
	chroma.Operator:         "#D0D0D0",
	chroma.Punctuation:      "#D0D0D0",
}))

// Lexers in order of preference.
var lexerNames = []string{"ca65", "ca65 assembler", "nasm"}

func lexer() chroma.Lexer {
	for _, name := range lexerNames {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	return nil
}

func formatter() chroma.Formatter {
	if f := formatters.Get("terminal256"); f != nil {
		return f
	}
	return formatters.Fallback
}

// Mode selects when listings are colorized.
type Mode string

// Color modes
const (
	Auto   Mode = "auto"
	Always Mode = "always"
	Never  Mode = "never"
)

// Enabled reports whether output should be colorized. In Auto mode colors
// are used only when the output is a terminal. The NoColorEnv environment
// variable overrides every mode.
func Enabled(mode Mode, terminal bool) bool {
	if os.Getenv(NoColorEnv) != "" {
		return false
	}
	switch mode {
	case Always:
		return true
	case Never:
		return false
	default:
		return terminal
	}
}

// Listing colorizes listing text. If no assembly lexer is available the
// text is returned unchanged.
func Listing(text string) (string, error) {
	l := lexer()
	if l == nil {
		return text, nil
	}

	iterator, err := l.Tokenise(nil, text)
	if err != nil {
		return text, err
	}

	var buf strings.Builder
	if err := formatter().Format(&buf, Style, iterator); err != nil {
		return text, err
	}

	out := buf.String()
	if !strings.HasSuffix(text, "\n") {
		out = strings.TrimSuffix(out, "\n")
	}
	return out, nil
}
