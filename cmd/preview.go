package main

import (
	"github.com/spf13/cobra"

	"github.com/nailtryon/tryon/internal/preview"
	"github.com/nailtryon/tryon/internal/preview/glview"
)

var previewSource SourceOptions

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Open an interactive try-on window",
	Long: `Opens a window showing the current try-on. Keys:
  left/right  previous/next photograph
  1-9         pick a polish colour
  S / L / C   cycle shape, length, coats
  G           toggle glossy/matte
  K           toggle the chroma-key placeholder photograph
  M           show the triangulated nail outlines
  R           reset zoom and pan
  Esc         quit`,
	Run: func(cmd *cobra.Command, args []string) {
		err := glview.Run(cmd.Context(), glview.Config{
			Compositor: comp,
			Assets:     assets,
			State:      preview.NewState(previewSource.photo(), previewSource.Placeholder),
		})
		if err != nil {
			die("Preview failed", err)
		}
	},
}

func init() {
	previewCmd.Flags().IntVarP(&previewSource.Photo, "photo", "p", 1, "Starting reference photograph 1-10")
	previewCmd.Flags().IntVar(&previewSource.Slider, "slider", -1, "Skin tone slider 0-100; picks the starting photograph instead of --photo")
	previewCmd.Flags().BoolVar(&previewSource.Placeholder, "placeholder", false, "Start on the chroma-key variant")
	rootCmd.AddCommand(previewCmd)
}
