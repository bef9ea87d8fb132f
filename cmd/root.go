package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nailtryon/tryon/internal/looks"
	"github.com/nailtryon/tryon/internal/nails"
	"github.com/nailtryon/tryon/internal/tryon"
)

// Version is the application version.
const Version = "0.1.0"

var (
	// comp is the compositor shared by subcommands, built from flags and
	// environment before any command runs.
	comp   *tryon.Compositor
	assets tryon.Assets

	assetsDir   string
	scale       float64
	geometryDoc string
	dbURL       string
)

var rootCmd = &cobra.Command{
	Use:     "tryon",
	Short:   "Nail polish virtual try-on renderer",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if assetsDir == "" {
			assetsDir = os.Getenv("TRYON_ASSETS")
		}
		if geometryDoc == "" {
			geometryDoc = os.Getenv("TRYON_GEOMETRY")
		}
		if !cmd.Flags().Changed("scale") {
			if v := os.Getenv("TRYON_SCALE"); v != "" {
				s, err := strconv.ParseFloat(v, 64)
				if err != nil {
					log.Printf("WARNING: ignoring TRYON_SCALE=%q: %v", v, err)
				} else {
					scale = s
				}
			}
		}

		table, err := nails.LoadTable(geometryDoc)
		if err != nil {
			return fmt.Errorf("failed to load nail geometry: %w", err)
		}
		comp = tryon.NewCompositor(table, scale)
		assets = tryon.Assets{Dir: assetsDir}
		runtimeLogger.Printf("assets=%q geometry=%q scale=%v", assetsDir, geometryDoc, scale)
		return nil
	},
}

// Execute runs the root command until completion or SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore connects to the looks database. Only commands that persist looks
// call it; rendering never needs a database.
func openStore(ctx context.Context) (*looks.Store, error) {
	url := dbURL
	if url == "" {
		if host := os.Getenv("POSTGRES_HOST"); host != "" {
			user := os.Getenv("POSTGRES_USER")
			pass := os.Getenv("POSTGRES_PASSWORD")
			name := os.Getenv("POSTGRES_DB")
			port := os.Getenv("POSTGRES_PORT")
			if port == "" {
				port = "5432"
			}
			url = fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, pass, host, port, name)
		} else {
			url = "postgres://localhost:5432/tryon"
		}
	}
	store, err := looks.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return store, nil
}

// die prints a boxed error and exits.
func die(context string, err error) {
	fmt.Fprintf(os.Stderr, "\n---------------------------------------------------------\n")
	fmt.Fprintf(os.Stderr, "TRYON ERROR: %s\n", context)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DETAILS: %v\n", err)
	}
	fmt.Fprintf(os.Stderr, "---------------------------------------------------------\n")
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&assetsDir, "assets", "", "Directory with hand01.png..hand10.png and their _tryon variants (env TRYON_ASSETS; stand-ins when missing)")
	rootCmd.PersistentFlags().Float64Var(&scale, "scale", 1, "Device scale factor for the 300x400 canvas, clamped to 1-4 (env TRYON_SCALE)")
	rootCmd.PersistentFlags().StringVar(&geometryDoc, "geometry", "", "JSON file overriding reference nail geometry (env TRYON_GEOMETRY)")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "PostgreSQL connection string for saved looks (default: postgres://localhost:5432/tryon)")
}
