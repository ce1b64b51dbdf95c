package main

import (
	"github.com/lottiekit/lottie-editor/internal/colorconv"
	"github.com/spf13/cobra"
)

func newSetColorCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "set-color <file> <color-id> <hex>",
		Short: "Set a color by its identifier (see inspect)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := openEditor(args[0])
			if err != nil {
				return err
			}
			if err := ed.SetColorByID(args[1], colorconv.FromHex(args[2])); err != nil {
				return err
			}
			return writeResult(ed, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	return cmd
}
