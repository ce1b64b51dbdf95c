package main

import (
	"strconv"

	"github.com/lottiekit/lottie-editor/internal/intake"
	"github.com/spf13/cobra"
)

func newSetImageCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "set-image <file> <asset-index> <image-file>",
		Short: "Replace an image asset, fitted to its frame",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}

			uri, err := intake.ReadImage(args[2])
			if err != nil {
				return err
			}

			ed, err := openEditor(args[0])
			if err != nil {
				return err
			}
			if err := ed.ReplaceImage(asset, uri); err != nil {
				return err
			}
			return writeResult(ed, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	return cmd
}
