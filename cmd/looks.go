package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nailtryon/tryon/internal/looks"
	"github.com/nailtryon/tryon/internal/render"
	"github.com/nailtryon/tryon/internal/tryon"
)

var (
	saveLook   LookOptions
	saveSource SourceOptions
	resetYes   bool
)

var looksCmd = &cobra.Command{
	Use:   "looks",
	Short: "Manage saved looks",
}

var looksSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Record a look without rendering it",
	Run: func(cmd *cobra.Command, args []string) {
		src, err := saveSource.source(assets)
		if err != nil {
			die("Invalid source", err)
		}
		req, err := buildRequest(src, &saveLook)
		if err != nil {
			die("Invalid look", err)
		}
		recordLook(cmd.Context(), req)
	},
}

var looksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved looks, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		withStore(cmd.Context(), func(store *looks.Store) {
			saved, err := store.List(cmd.Context())
			if err != nil {
				die("Failed to list looks", err)
			}
			if len(saved) == 0 {
				fmt.Println("No saved looks.")
				return
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tSOURCE\tCOLOR\tSHAPE\tFINISH\tSAVED")
			fmt.Fprintln(w, "--\t------\t-----\t-----\t------\t-----")
			for _, l := range saved {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					l.ID, l.SourceRef, l.Color, describeShape(l.Shape, l.Length),
					describeFinish(l.Finish), l.SavedAt.Local().Format("2006-01-02 15:04"))
			}
			w.Flush()
		})
	},
}

var looksDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a saved look",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			die("Invalid look id", err)
		}
		withStore(cmd.Context(), func(store *looks.Store) {
			if err := store.Delete(cmd.Context(), id); errors.Is(err, looks.ErrNotFound) {
				die(fmt.Sprintf("No look #%d", id), nil)
			} else if err != nil {
				die("Failed to delete look", err)
			}
			fmt.Printf("Deleted look #%d\n", id)
		})
	},
}

var looksResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop every saved look",
	Run: func(cmd *cobra.Command, args []string) {
		if !resetYes && !confirm(bufio.NewReader(os.Stdin), "Are you sure you want to delete all saved looks?") {
			return
		}
		withStore(cmd.Context(), func(store *looks.Store) {
			if err := store.Reset(cmd.Context()); err != nil {
				die("Failed to reset looks", err)
			}
			fmt.Println("Saved looks cleared.")
		})
	},
}

func init() {
	saveLook.register(looksSaveCmd)
	saveSource.register(looksSaveCmd)
	looksSaveCmd.MarkFlagRequired("color")
	looksResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")

	looksCmd.AddCommand(looksSaveCmd, looksListCmd, looksDeleteCmd, looksResetCmd)
	rootCmd.AddCommand(looksCmd)
}

func withStore(ctx context.Context, fn func(*looks.Store)) {
	store, err := openStore(ctx)
	if err != nil {
		die("Failed to open looks store", err)
	}
	// The command context may already be cancelled by Ctrl+C.
	defer store.Close(context.Background())
	fn(store)
}

func recordLook(ctx context.Context, req tryon.Request) {
	withStore(ctx, func(store *looks.Store) {
		look, err := store.Save(ctx, looks.Look{
			SourceRef: req.Source.String(),
			Color:     *req.Color,
			Shape:     req.Shape,
			Length:    req.Length,
			Finish:    req.Finish,
		})
		if err != nil {
			die("Failed to save look", err)
		}
		fmt.Printf("Saved look #%d\n", look.ID)
	})
}

func describeShape(s render.Shape, l render.Length) string {
	return s.String() + "/" + l.String()
}

func describeFinish(f render.Finish) string {
	return fmt.Sprintf("%d coats, %s", f.Coats, f.TopCoat)
}

func confirm(r *bufio.Reader, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	res, _ := r.ReadString('\n')
	res = strings.TrimSpace(strings.ToLower(res))
	return res == "y" || res == "yes"
}
