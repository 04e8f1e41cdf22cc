// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

type handler func(h *Host, c *command, args []string) error

// A command is stored as the data of each node in the command tree.
type command struct {
	name        string
	brief       string
	description string
	usage       string
	fn          handler
}

var (
	cmds     *cmd.Tree
	commands []*command
)

func init() {
	commands = []*command{
		{
			name:        "help",
			brief:       "Display help for a command",
			description: "Display a list of commands, or the syntax and description of a single command.",
			usage:       "help [<command>]",
			fn:          (*Host).cmdHelp,
		},
		{
			name:  "disassemble",
			brief: "Disassemble code",
			description: "Disassemble machine code starting at the requested" +
				" address. The number of instruction lines to disassemble may be" +
				" specified as an option. If no address is specified, the" +
				" disassembly continues from where the last disassembly left off.",
			usage: "disassemble [<address>] [<lines>]",
			fn:    (*Host).cmdDisassemble,
		},
		{
			name:  "load",
			brief: "Load a binary file",
			description: "Load the contents of a binary file for disassembly." +
				" Every byte of the file is treated as machine code. The address" +
				" of the first byte may be specified as an option; otherwise the" +
				" BaseAddr setting is used.",
			usage: "load <filename> [<address>]",
			fn:    (*Host).cmdLoad,
		},
		{
			name:  "memory",
			brief: "Dump memory at address",
			description: "Dump the contents of the loaded image starting from the" +
				" specified address. The number of bytes to dump may be" +
				" specified as an option. If no address is specified, the" +
				" memory dump continues from where the last dump left off.",
			usage: "memory [<address>] [<bytes>]",
			fn:    (*Host).cmdMemoryDump,
		},
		{
			name:  "opcode",
			brief: "Describe an opcode or instruction",
			description: "Display the addressing mode, length, cycle cost and" +
				" affected flags of an opcode byte, or of every variant of an" +
				" instruction. Instruction names may be abbreviated to any" +
				" unique prefix.",
			usage: "opcode <byte>|<instruction>",
			fn:    (*Host).cmdOpcode,
		},
		{
			name:        "quit",
			brief:       "Quit the program",
			description: "Quit the program.",
			usage:       "quit",
			fn:          (*Host).cmdQuit,
		},
		{
			name:  "set",
			brief: "Set a configuration variable",
			description: "Set the value of a configuration variable. To see the" +
				" current values of all configuration variables, type set" +
				" without any arguments.",
			usage: "set [<var> <value>]",
			fn:    (*Host).cmdSet,
		},
	}

	root := cmd.NewTree(cmd.TreeDescriptor{Name: "dis6502"})
	for _, c := range commands {
		root.AddCommand(cmd.CommandDescriptor{
			Name:        c.name,
			Brief:       c.brief,
			Description: c.description,
			Usage:       c.usage,
			Data:        c,
		})
	}

	// Add command shortcuts.
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("l", "load")
	root.AddShortcut("m", "memory")
	root.AddShortcut("o", "opcode")
	root.AddShortcut("q", "quit")
	root.AddShortcut("?", "help")

	cmds = root
}
