package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coolbeans/memodrill/pkg/config"
	"github.com/coolbeans/memodrill/pkg/cube"
	"github.com/coolbeans/memodrill/pkg/render"
	"github.com/spf13/cobra"
)

func renderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <letter|position|colors...>",
		Short: "Draw a piece as PNG, SVG or a terminal preview",
		Long: `Draws the piece selected by a lookup query. With --output the image is
written to a .png or .svg file; otherwise it is previewed in the terminal.`,
		Example: `  memodrill render -t c URF -o urf.png
  memodrill render -t e red white`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pieceStr, _ := cmd.Flags().GetString("type")
			output, _ := cmd.Flags().GetString("output")

			piece, err := cube.ParsePieceType(pieceStr)
			if err != nil {
				return err
			}
			entry, err := lookupEntry(a.enc.Table(piece), strings.Join(args, " "))
			if err != nil {
				return err
			}
			d, err := render.Render(entry.Tuple, piece)
			if err != nil {
				return err
			}

			if output == "" {
				out := cmd.OutOrStdout()
				if resolvePreview(a.settings.Quiz.Preview, out) == config.PreviewANSI {
					if err := render.WriteANSI(out, d, previewCols); err != nil {
						return err
					}
				}
				fmt.Fprintf(out, "%s %s: %s\n", entry.Letter, entry.Position, render.Describe(d))
				return nil
			}

			size := a.settings.Render.Size
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			switch strings.ToLower(filepath.Ext(output)) {
			case ".png":
				err = render.WritePNG(f, d, size)
			case ".svg":
				err = render.WriteSVG(f, d, size)
			default:
				err = fmt.Errorf("unsupported output format %q (use .png or .svg)", filepath.Ext(output))
			}
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(output)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s %s)\n", output, entry.Letter, entry.Position)
			return nil
		},
	}
	cmd.Flags().StringP("type", "t", "e", "piece type: c (corner) or e (edge)")
	cmd.Flags().StringP("output", "o", "", "output file (.png or .svg)")
	cmd.Flags().Int("size", 256, "image size in pixels")
	a.bindFlags(cmd, map[string]string{"render.size": "size"})
	return cmd
}
