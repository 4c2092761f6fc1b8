package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newReadCmd(c *cli) *cobra.Command {
	var (
		cache    string
		readJSON bool
	)

	cmd := &cobra.Command{
		Use:   "read [name]",
		Short: "Read a note",
		Long:  `Read a note by its name. Outputs the raw text by default, or a JSON object with --json.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.openService(cache, false)
			if err != nil {
				return err
			}

			note, err := svc.GetNote(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to read note: %w", err)
			}

			out := cmd.OutOrStdout()
			if readJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(note)
			}

			fmt.Fprint(out, note.Text)
			return nil
		},
	}

	addCacheFlag(cmd, &cache)
	cmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
	return cmd
}
