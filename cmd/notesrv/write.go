package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newWriteCmd(c *cli) *cobra.Command {
	var (
		cache string
		text  string
	)

	cmd := &cobra.Command{
		Use:   "write [name]",
		Short: "Create a note",
		Long: `Create a new note. The text comes from --text, or from stdin when the
flag is omitted. An existing note is never overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := noteText(cmd, text)
			if err != nil {
				return err
			}

			svc, err := c.openService(cache, true)
			if err != nil {
				return err
			}

			if err := svc.CreateNote(cmd.Context(), args[0], content); err != nil {
				return fmt.Errorf("failed to create note: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note '%s' created.\n", args[0])
			return nil
		},
	}

	addCacheFlag(cmd, &cache)
	cmd.Flags().StringVar(&text, "text", "", "Note text (reads stdin when omitted)")
	return cmd
}

// noteText returns --text when given, otherwise everything on stdin.
func noteText(cmd *cobra.Command, text string) (string, error) {
	if cmd.Flags().Changed("text") {
		return text, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
