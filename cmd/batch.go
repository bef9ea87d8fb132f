package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nailtryon/tryon/internal/hand"
	"github.com/nailtryon/tryon/internal/tryon"
)

var (
	batchLook      LookOptions
	batchOut       string
	batchWorkers   int
	batchReference bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Render a polish colour onto every reference photograph",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := batchLook.color(); err != nil {
			die("Invalid look", err)
		}
		if err := os.MkdirAll(batchOut, 0o755); err != nil {
			die("Failed to create output directory", err)
		}
		failed := runBatch(cmd.Context(), batchWorkers)
		if failed > 0 {
			die(fmt.Sprintf("%d of %d photographs failed", failed, hand.NumPhotos), nil)
		}
		fmt.Printf("Wrote %d photographs to %s\n", hand.NumPhotos, batchOut)
	},
}

func init() {
	batchLook.register(batchCmd)
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", ".", "Output directory")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", runtime.NumCPU(), "Number of parallel render workers")
	batchCmd.Flags().BoolVar(&batchReference, "reference", false, "Draw nail shapes on the plain photographs instead of recoloring the chroma-key variants")
	batchCmd.MarkFlagRequired("color")
	rootCmd.AddCommand(batchCmd)
}

type batchResult struct {
	photo hand.PhotoID
	err   error
}

// runBatch renders every photograph on a worker pool and returns the number
// of failures.
func runBatch(ctx context.Context, workers int) int {
	workers = max(1, min(workers, hand.NumPhotos))

	bar := progressbar.NewOptions(hand.NumPhotos,
		progressbar.OptionSetDescription("Rendering"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	tasks := make(chan hand.PhotoID, workers)
	results := make(chan batchResult, workers*2)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for photo := range tasks {
				runtimeLogger.Printf("worker %d: %v", workerID, photo)
				results <- batchResult{photo: photo, err: renderPhoto(ctx, photo)}
			}
		}(i)
	}

	go func() {
		defer close(tasks)
		for _, photo := range hand.Photos() {
			select {
			case tasks <- photo:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	failed, done := 0, 0
	for r := range results {
		done++
		if r.err != nil {
			failed++
			bar.Clear()
			fmt.Fprintf(os.Stderr, "%v: %v\n", r.photo, r.err)
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Fprintln(os.Stderr)
	return failed + hand.NumPhotos - done
}

func renderPhoto(ctx context.Context, photo hand.PhotoID) error {
	req, err := buildRequest(assets.Source(photo, !batchReference), &batchLook)
	if err != nil {
		return err
	}
	res, err := comp.Render(ctx, req)
	if err != nil {
		return err
	}
	data, err := tryon.EncodePNG(res.Image)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(batchOut, tryon.Filename(photo, false)), data, 0o644)
}
