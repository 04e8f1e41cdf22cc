// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/dis6502/colorize"
	"github.com/beevik/dis6502/cpu"
	"github.com/beevik/dis6502/disasm"
	"github.com/beevik/dis6502/host"
	"github.com/beevik/dis6502/logging"
	"github.com/beevik/dis6502/opcodes"
	"github.com/beevik/dis6502/rom"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type options struct {
	base        string
	opcodes     string
	arch        string
	color       string
	script      string
	json        bool
	interactive bool
	debug       bool
}

// An environment holds the state shared by every command once the flags
// have been validated.
type environment struct {
	log   *log.Logger
	arch  cpu.Architecture
	set   *cpu.InstructionSet
	table *opcodes.Table
	base  uint16
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "dis6502 [file]",
		Short: "Disassemble 6502 machine code",
		Long: `dis6502 decodes a raw binary of 6502 machine code into an assembly listing.

Every byte from the start of the file is decoded as an instruction. Each
listing line shows the instruction's address, its raw bytes and its
assembly text; relative branches are annotated with their target address.
Opcodes that name no instruction are listed as .db data bytes.

With no file argument the binary is read from standard input, or, when
standard input is a terminal, an interactive session is started.`,
		Example: `  dis6502 game.bin
  dis6502 --base '$C000' --arch cmos rom.bin
  dis6502 --json game.bin
  dis6502 -i game.bin`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.base, "base", "b", "$5000", "Address of the first byte ($hex, 0xhex or decimal)")
	pf.StringVarP(&opts.opcodes, "opcodes", "o", "", "Instruction metadata CSV (default: built-in table)")
	pf.StringVarP(&opts.arch, "arch", "a", "nmos", "CPU architecture (nmos or cmos)")
	pf.BoolVarP(&opts.debug, "debug", "d", false, "Debug logging")

	f := root.Flags()
	f.BoolVarP(&opts.json, "json", "j", false, "Output the listing as JSON lines")
	f.StringVar(&opts.color, "color", string(colorize.Auto), "Colorize the listing (auto, always or never)")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "Start an interactive session")
	f.StringVarP(&opts.script, "script", "s", "", "Run session commands from a file")

	root.AddCommand(newSchemaCmd(), newOpcodesCmd(opts))
	return root
}

// Validate the shared flags and load the metadata table. The table must
// agree with the instruction set before any decoding is done.
func setup(cmd *cobra.Command, opts *options) (*environment, error) {
	env := &environment{log: logging.New(cmd.ErrOrStderr(), opts.debug)}

	switch colorize.Mode(opts.color) {
	case colorize.Auto, colorize.Always, colorize.Never:
	default:
		return nil, fmt.Errorf("invalid color mode '%s'", opts.color)
	}

	arch, err := cpu.ParseArchitecture(opts.arch)
	if err != nil {
		return nil, err
	}
	env.arch = arch
	env.set = cpu.GetInstructionSet(arch)

	base, err := host.ParseAddress(opts.base)
	if err != nil {
		return nil, fmt.Errorf("invalid base address: %w", err)
	}
	env.base = base

	if opts.opcodes != "" {
		env.table, err = opcodes.Load(opts.opcodes)
	} else {
		env.table, err = opcodes.Default()
	}
	if err != nil {
		return nil, err
	}
	if err := env.table.Verify(env.set); err != nil {
		return nil, err
	}

	env.log.Debug("opcode table loaded", "source", env.table.Source(), "rows", env.table.Len(), "arch", arch)
	return env, nil
}

func runRoot(cmd *cobra.Command, args []string, opts *options) error {
	env, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	var img *rom.Image
	switch {
	case len(args) > 0:
		if img, err = rom.Load(args[0]); err != nil {
			return err
		}
	case opts.interactive || opts.script != "" || isTerminal(cmd.InOrStdin()):
	default:
		if img, err = rom.Read(cmd.InOrStdin(), "<stdin>"); err != nil {
			return err
		}
	}
	if img != nil {
		env.log.Debug("image loaded", "name", img.Name, "bytes", len(img.Data), "base", fmt.Sprintf("$%04X", env.base))
	}

	if opts.script != "" || opts.interactive || img == nil {
		return runHost(cmd, env, opts, img)
	}

	out := cmd.OutOrStdout()
	d := disasm.New(env.set, env.base)
	if opts.json {
		return writeJSON(out, d, img.Data)
	}

	color := colorize.Enabled(colorize.Mode(opts.color), isTerminal(out))
	return writeListing(out, d, img.Data, color)
}

func runHost(cmd *cobra.Command, env *environment, opts *options, img *rom.Image) error {
	h := host.New(host.Config{
		Arch:   env.arch,
		Table:  env.table,
		Base:   env.base,
		Color:  colorize.Enabled(colorize.Mode(opts.color), isTerminal(cmd.OutOrStdout())),
		Image:  img,
		Logger: env.log,
	})

	if opts.script != "" {
		file, err := os.Open(opts.script)
		if err != nil {
			return err
		}
		defer file.Close()
		h.RunCommands(file, cmd.OutOrStdout(), false)
		if !opts.interactive {
			return nil
		}
	}

	h.RunCommands(cmd.InOrStdin(), cmd.OutOrStdout(), true)
	return nil
}

// Write the listing as text. A truncated final instruction is listed
// before its error is returned.
func writeListing(w io.Writer, d *disasm.Disassembler, data []byte, color bool) error {
	if !color {
		return d.Write(w, data)
	}

	var b strings.Builder
	err := d.Write(&b, data)
	text, cerr := colorize.Listing(b.String())
	if cerr != nil {
		text = b.String()
	}
	fmt.Fprint(w, text)
	return err
}

// A listingRecord is the JSON form of one listing line.
type listingRecord struct {
	Address   string `json:"address" jsonschema:"title=Address,description=Display address of the opcode as four hex digits,pattern=^[0-9A-F]{4}$"`
	Offset    int    `json:"offset" jsonschema:"title=Offset,description=Offset of the opcode within the input,minimum=0"`
	Bytes     string `json:"bytes" jsonschema:"title=Bytes,description=Raw instruction bytes as space separated hex pairs"`
	Mnemonic  string `json:"mnemonic" jsonschema:"title=Mnemonic,description=Instruction name or .db for a data byte"`
	Operand   string `json:"operand,omitempty" jsonschema:"title=Operand,description=Formatted operand"`
	Mode      string `json:"mode" jsonschema:"title=Addressing Mode"`
	Length    int    `json:"length" jsonschema:"title=Length,description=Instruction length in bytes,minimum=1,maximum=3"`
	Target    string `json:"target,omitempty" jsonschema:"title=Branch Target,description=Absolute target address of a relative branch"`
	Truncated bool   `json:"truncated,omitempty" jsonschema:"title=Truncated,description=Operand runs past the end of the input"`
}

func newListingRecord(l disasm.Line) listingRecord {
	hex := make([]string, len(l.Bytes))
	for i, b := range l.Bytes {
		hex[i] = fmt.Sprintf("%02X", b)
	}

	r := listingRecord{
		Address:   fmt.Sprintf("%04X", l.Address),
		Offset:    l.Offset,
		Bytes:     strings.Join(hex, " "),
		Mnemonic:  l.Mnemonic,
		Mode:      l.Mode.String(),
		Length:    l.Length,
		Truncated: l.Truncated,
	}
	if !l.Truncated {
		r.Operand = l.Operand
	}
	if l.Branch && !l.Truncated {
		r.Target = fmt.Sprintf("%04X", l.Target)
	}
	return r
}

func writeJSON(w io.Writer, d *disasm.Disassembler, data []byte) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	err := d.Walk(data, func(l disasm.Line) error {
		return enc.Encode(newListingRecord(l))
	})
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	return err
}
