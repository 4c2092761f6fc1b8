package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		cache    string
		listJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes in the cache directory",
		Long:  `List prints one note name per line, or every note as a JSON array with --json.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.openService(cache, false)
			if err != nil {
				return err
			}

			notes, err := svc.ListNotes(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list notes: %w", err)
			}

			out := cmd.OutOrStdout()
			if listJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(notes)
			}

			for _, n := range notes {
				fmt.Fprintln(out, n.Name)
			}
			return nil
		},
	}

	addCacheFlag(cmd, &cache)
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	return cmd
}
