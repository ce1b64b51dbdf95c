package main

import (
	"fmt"
	"strings"

	"github.com/lottiekit/lottie-editor/internal/colorconv"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "List the editable entities of an animation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := openEditor(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			doc := ed.Document()
			fmt.Fprintf(out, "%s  %dx%d  %g fps  frames %g-%g\n\n",
				ed.Name(), doc.Width(), doc.Height(),
				doc.FrameRate(), doc.InPoint(), doc.OutPoint())

			texts := ed.TextLayers()
			fmt.Fprintf(out, "Text layers (%d):\n", len(texts))
			for _, info := range texts {
				fmt.Fprintf(out, "  [%d] %s: %q\n", info.Index, info.Name, info.Text)
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Colors:")
			for _, lc := range ed.Colors() {
				fmt.Fprintf(out, "  %s\n", lc.Name)
				for _, info := range lc.Entries {
					fmt.Fprintf(out, "    %-24s %-6s %s\n",
						info.ID, info.Role, colorconv.ToHex(info.Color))
				}
			}

			assets := ed.ImageAssets()
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Image assets (%d):\n", len(assets))
			for _, i := range assets {
				asset := doc.Assets()[i]
				w, _ := asset["w"].(float64)
				h, _ := asset["h"].(float64)
				p, _ := asset["p"].(string)
				kind := "external"
				if strings.HasPrefix(p, "data:") {
					kind = "embedded"
				}
				fmt.Fprintf(out, "  [%d] %gx%g %s\n", i, w, h, kind)
			}
			return nil
		},
	}
}
