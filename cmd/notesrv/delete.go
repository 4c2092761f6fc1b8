package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(c *cli) *cobra.Command {
	var cache string

	cmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a note from the cache directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.openService(cache, false)
			if err != nil {
				return err
			}

			if err := svc.DeleteNote(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete note: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %s\n", args[0])
			return nil
		},
	}

	addCacheFlag(cmd, &cache)
	return cmd
}
