package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCmd(c *cli) *cobra.Command {
	var (
		cache string
		text  string
	)

	cmd := &cobra.Command{
		Use:   "update [name]",
		Short: "Replace the text of an existing note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := noteText(cmd, text)
			if err != nil {
				return err
			}

			svc, err := c.openService(cache, false)
			if err != nil {
				return err
			}

			if err := svc.UpdateNote(cmd.Context(), args[0], content); err != nil {
				return fmt.Errorf("failed to update note: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note '%s' updated.\n", args[0])
			return nil
		},
	}

	addCacheFlag(cmd, &cache)
	cmd.Flags().StringVar(&text, "text", "", "Note text (reads stdin when omitted)")
	return cmd
}
