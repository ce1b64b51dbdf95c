package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newSetTextCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "set-text <file> <layer-index> <text>",
		Short: "Replace the string value of a text layer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			layer, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}

			ed, err := openEditor(args[0])
			if err != nil {
				return err
			}
			if err := ed.SetText(layer, args[2]); err != nil {
				return err
			}
			return writeResult(ed, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	return cmd
}
