package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "lottie-edit",
		Short: "Inspect and edit Lottie animation files",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newSetTextCmd())
	root.AddCommand(newSetColorCmd())
	root.AddCommand(newSetImageCmd())
	root.AddCommand(newExportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("lottie-edit 0.1.0")
		},
	}
}
