// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive shell for exploring a binary
// image: loading it, disassembling address ranges, dumping its bytes and
// looking up instruction metadata.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/dis6502/colorize"
	"github.com/beevik/dis6502/cpu"
	"github.com/beevik/dis6502/disasm"
	"github.com/beevik/dis6502/logging"
	"github.com/beevik/dis6502/opcodes"
	"github.com/beevik/dis6502/rom"
	"github.com/beevik/prefixtree/v2"
	"github.com/charmbracelet/log"
)

var errQuit = errors.New("quit")

// A Config holds everything a Host needs before it starts processing
// commands.
type Config struct {
	Arch   cpu.Architecture
	Table  *opcodes.Table // verified metadata table
	Base   uint16         // initial BaseAddr setting
	Color  bool           // initial ColorMode setting
	Image  *rom.Image     // optional image to start with
	Logger *log.Logger
}

type selection struct {
	c    *command
	args []string
}

// A Host runs disassembler commands read from an input stream.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	log         *log.Logger
	set         *cpu.InstructionSet
	table       *opcodes.Table
	mnemonics   *prefixtree.Tree[string]
	image       *rom.Image
	lastCmd     *selection
	settings    *settings
}

// New creates a new host.
func New(cfg Config) *Host {
	h := &Host{
		log:       cfg.Logger,
		set:       cpu.GetInstructionSet(cfg.Arch),
		table:     cfg.Table,
		mnemonics: prefixtree.New[string](),
		image:     cfg.Image,
		settings:  newSettings(cfg.Base),
	}
	if h.log == nil {
		h.log = logging.Discard()
	}
	h.settings.ColorMode = cfg.Color

	for _, name := range h.set.Names() {
		h.mnemonics.Add(name, name)
	}
	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive
	defer h.flush()

	if interactive {
		h.println()
		if h.image == nil {
			h.println("Type 'load <filename>' to load a binary, or 'help' for a list of commands.")
		}
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var sel selection
		if strings.TrimSpace(line) != "" {
			n, args, err := cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				h.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}

			c, ok := n.(*cmd.Command)
			if !ok {
				h.displayCommands()
				continue
			}
			sel = selection{c: c.Data.(*command), args: args}
		} else if h.lastCmd != nil {
			sel = *h.lastCmd
		}

		if sel.c == nil {
			continue
		}
		h.lastCmd = &sel

		err = sel.c.fn(h, sel.c, sel.args)
		if err != nil {
			if err != errQuit {
				h.printf("ERROR: %v\n", err)
			}
			break
		}
	}
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.print("* ")
		h.flush()
	}
}

func (h *Host) requireImage() bool {
	if h.image == nil {
		h.println("No image loaded.")
		return false
	}
	return true
}

func (h *Host) disassembler() *disasm.Disassembler {
	return disasm.New(h.set, h.settings.BaseAddr)
}

func (h *Host) window() rom.Window {
	return h.image.At(h.settings.BaseAddr)
}

// Evaluate an address expression.
func (h *Host) parseAddr(s string) (uint16, error) {
	v, err := evalExpr(s, h)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0xffff {
		return 0, fmt.Errorf("address $%X out of range", v)
	}
	return uint16(v), nil
}

// Evaluate a positive count expression.
func (h *Host) parseCount(s string) (int, error) {
	v, err := evalExpr(s, h)
	if err != nil {
		return 0, err
	}
	if v < 1 || v > 0x10000 {
		return 0, fmt.Errorf("count %d out of range", v)
	}
	return int(v), nil
}

// Resolve identifiers used in address expressions. "base" and "end" are
// the first and last addresses of the loaded image, "." is the next
// disassembly address, and any other identifier names a numeric setting.
func (h *Host) resolveIdentifier(s string) (int64, error) {
	switch strings.ToLower(s) {
	case ".":
		return int64(h.settings.NextDisasmAddr), nil
	case "base":
		return int64(h.settings.BaseAddr), nil
	case "end":
		if h.image == nil || len(h.image.Data) == 0 {
			return 0, errors.New("no image loaded")
		}
		return int64(h.window().End()), nil
	}

	v, err := h.settings.Value(s)
	if err != nil {
		return 0, fmt.Errorf("unknown identifier '%s'", s)
	}
	return v, nil
}

func (h *Host) cmdHelp(c *command, args []string) error {
	if len(args) == 0 {
		h.displayCommands()
		return nil
	}

	n, _, err := cmds.Lookup(strings.Join(args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if cc, ok := n.(*cmd.Command); ok {
		sc := cc.Data.(*command)
		h.printf("Syntax: %s\n\n", sc.usage)
		h.printf("Description:\n%s\n\n", indentWrap(3, sc.description))
	}
	return nil
}

func (h *Host) cmdLoad(c *command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	base := h.settings.BaseAddr
	if len(args) >= 2 {
		addr, err := h.parseAddr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		base = addr
	}

	img, err := rom.Load(args[0])
	if err != nil {
		h.log.Debug("load failed", "file", args[0], "err", err)
		h.printf("%v\n", err)
		return nil
	}

	h.image = img
	h.settings.BaseAddr = base
	h.settings.NextDisasmAddr = h.settings.BaseAddr
	h.settings.NextMemDumpAddr = h.settings.BaseAddr
	h.log.Debug("image loaded", "file", img.Path, "bytes", len(img.Data))

	if len(img.Data) == 0 {
		h.printf("Loaded '%s' (empty)\n", img.Name)
	} else {
		h.printf("Loaded '%s' to $%04X..$%04X\n", img.Name,
			h.settings.BaseAddr, h.window().End())
	}
	return nil
}

func (h *Host) cmdDisassemble(c *command, args []string) error {
	if !h.requireImage() {
		return nil
	}

	addr := h.settings.NextDisasmAddr
	if len(args) > 0 && args[0] != "$" {
		a, err := h.parseAddr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	lines := h.settings.DisasmLines
	if len(args) > 1 {
		n, err := h.parseCount(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = n
	}

	w := h.window()
	if !w.Contains(addr) {
		h.printf("Address $%04X is outside the loaded image.\n", addr)
		return nil
	}
	offset := w.Offset(addr)

	d := h.disassembler()
	data := h.image.Data
	for i := 0; i < lines && offset < len(data); i++ {
		l, err := d.DecodeOne(data, offset)
		if err == nil || l.Truncated {
			h.println(h.format(l))
		}
		if err != nil {
			h.printf("%v\n", err)
			offset = len(data)
			break
		}
		offset += l.Length
	}
	if offset >= len(data) {
		h.println("End of image.")
	}

	h.settings.NextDisasmAddr = d.Address(offset)
	h.lastCmd.args = []string{"$", strconv.Itoa(lines)}
	return nil
}

func (h *Host) format(l disasm.Line) string {
	var s string
	if h.settings.CompactMode {
		s = l.Compact()
	} else {
		s = l.String()
	}
	if h.settings.ColorMode {
		if cs, err := colorize.Listing(s); err == nil {
			s = cs
		}
	}
	return s
}

func (h *Host) cmdMemoryDump(c *command, args []string) error {
	if !h.requireImage() {
		return nil
	}

	addr := h.settings.NextMemDumpAddr
	if len(args) > 0 && args[0] != "$" {
		a, err := h.parseAddr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := h.settings.MemDumpBytes
	if len(args) > 1 {
		n, err := h.parseCount(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		bytes = n
	}

	w := h.window()
	if !w.Contains(addr) {
		h.printf("Address $%04X is outside the loaded image.\n", addr)
		return nil
	}
	bytes = min(bytes, len(h.image.Data)-w.Offset(addr))

	h.dumpMemory(addr, bytes)
	h.settings.NextMemDumpAddr = uint16(int(addr) + bytes)
	h.lastCmd.args = []string{"$", strconv.Itoa(bytes)}
	return nil
}

// Dump image bytes in rows of eight, aligned to 8-byte address
// boundaries. Addresses outside the requested range are left blank.
func (h *Host) dumpMemory(addr0 uint16, bytes int) {
	buf := []byte("    -" + strings.Repeat(" ", 35))
	data := make([]byte, bytes)
	h.window().LoadBytes(addr0, data)

	start := int(addr0) &^ 7
	stop := int(addr0) + bytes
	for row := start; row < stop; row += 8 {
		addrToBuf(uint16(row), buf[0:4])
		for a, c1, c2 := row, 6, 32; c1 < 29; a, c1, c2 = a+1, c1+3, c2+1 {
			if a >= int(addr0) && a < stop {
				m := data[a-int(addr0)]
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) cmdOpcode(c *command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	if isNumber(args[0]) {
		v, err := ParseNumber(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if v > 0xff {
			h.printf("Opcode $%X out of range.\n", v)
			return nil
		}
		h.displayOpcode(h.set.Lookup(byte(v)))
		return nil
	}

	name, err := h.mnemonics.FindValue(strings.ToUpper(args[0]))
	if err != nil {
		h.printf("Instruction '%s': %v\n", args[0], err)
		return nil
	}
	for _, inst := range h.set.Variants(name) {
		h.displayOpcode(inst)
	}
	return nil
}

func (h *Host) displayOpcode(inst *cpu.Instruction) {
	cycles, flags := "-", "-"
	if inst.Defined() {
		cycles = strconv.Itoa(int(inst.Cycles))
	}
	if h.table != nil {
		if op := h.table.ByOpcode(inst.Opcode); op != nil {
			cycles, flags = op.Cycles, op.Flags
		}
	}
	h.printf("    $%02X  %-4s %-13s %d  %-3s %s\n",
		inst.Opcode, inst.Name, inst.Mode, inst.Length, cycles, flags)
}

func (h *Host) cmdQuit(c *command, args []string) error {
	return errQuit
}

func (h *Host) cmdSet(c *command, args []string) error {
	switch len(args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c)

	default:
		key, value := args[0], strings.Join(args[1:], " ")
		oldBase := h.settings.BaseAddr
		if err := h.settings.Parse(key, value); err != nil {
			h.printf("Setting '%s': %v\n", key, err)
			return nil
		}
		name, _ := h.settings.Find(key)
		if name == "BaseAddr" {
			h.rebase(oldBase)
		}
		h.log.Debug("setting updated", "name", name, "value", value)
		h.println("Setting updated.")
	}
	return nil
}

// Move the disassembly and memory dump cursors along with the image when
// the base address changes.
func (h *Host) rebase(oldBase uint16) {
	delta := h.settings.BaseAddr - oldBase
	h.settings.NextDisasmAddr += delta
	h.settings.NextMemDumpAddr += delta
}

func (h *Host) displayUsage(c *command) {
	if c.usage != "" {
		h.printf("Syntax: %s\n", c.usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) displayCommands() {
	h.println("Commands:")
	for _, c := range commands {
		if c.brief != "" {
			h.printf("    %-15s  %s\n", c.name, c.brief)
		}
	}
}
