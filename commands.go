// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "schema",
		Short:  "Generate JSON schema for listing records",
		Long:   "Generate the JSON schema of the records written by --json",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reflector := new(jsonschema.Reflector)
			bts, err := json.MarshalIndent(reflector.Reflect(&listingRecord{}), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(bts))
			return nil
		},
	}
}

func newOpcodesCmd(opts *options) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "opcodes",
		Short: "Print the instruction metadata table",
		Long: `Print every row of the instruction metadata table after checking it
against the instruction set of the selected architecture.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			defer w.Flush()

			if asJSON {
				enc := json.NewEncoder(w)
				for _, op := range env.table.Rows() {
					if err := enc.Encode(op); err != nil {
						return err
					}
				}
				return nil
			}

			for _, op := range env.table.Rows() {
				fmt.Fprintf(w, "$%02X  %-4s %-13s %d  %-3s %s\n",
					op.Opcode, op.Mnemonic, op.Mode, op.Bytes, op.Cycles, op.Flags)
			}
			return nil
		},
	}
	c.Flags().BoolVarP(&asJSON, "json", "j", false, "Output the table as JSON lines")
	return c
}
