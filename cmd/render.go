package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nailtryon/tryon/internal/tryon"
)

var (
	renderLook   LookOptions
	renderSource SourceOptions
	renderOut    string
	renderSave   bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a polish colour onto one hand photograph",
	Example: `  tryon render --photo 5 --placeholder --color "#3D1A36"
  tryon render --captured me.jpg --depth dark --color "#C2185B" --shape oval --out me-berry.png`,
	Run: func(cmd *cobra.Command, args []string) {
		src, err := renderSource.source(assets)
		if err != nil {
			die("Invalid source", err)
		}
		req, err := buildRequest(src, &renderLook)
		if err != nil {
			die("Invalid look", err)
		}

		res, err := comp.Render(cmd.Context(), req)
		if err != nil {
			die("Render failed", err)
		}
		data, err := tryon.EncodePNG(res.Image)
		if err != nil {
			die("Failed to encode PNG", err)
		}
		if err := os.WriteFile(renderOut, data, 0o644); err != nil {
			die("Failed to write output", err)
		}
		fmt.Printf("Rendered %v via %v to %s\n", src, res.Path, renderOut)
		if res.Path == tryon.PathRecolor {
			fmt.Printf("  %d pixels, %d recolored (%d highlights)\n",
				res.Recolor.Pixels, res.Recolor.Placeholder, res.Recolor.Highlight)
		}

		if !renderSave {
			return
		}
		recordLook(cmd.Context(), req)
	},
}

func init() {
	renderLook.register(renderCmd)
	renderSource.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", tryon.ExportName, "Output PNG path")
	renderCmd.Flags().BoolVar(&renderSave, "save", false, "Also record the look in the database")
	renderCmd.MarkFlagRequired("color")
	rootCmd.AddCommand(renderCmd)
}
