// Package cli implements the flightgrid command tree: ingestion, the
// Johnson all-pairs run, codeshare classification, and table/JSON
// reporting, glued together with cobra commands and koanf configuration.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	cfg        Config
	configPath string
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "flightgrid",
	Short: "All-pairs shortest paths and codeshare analysis for airline networks",
	Long: `flightgrid builds a directed multi-operator airline graph from CSV
airport and route tables, computes all-pairs shortest paths with Johnson's
algorithm, and reports the origin-destination pairs whose optimal routing
requires more than one carrier.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(configPath, cmd.Root().PersistentFlags())
		if err != nil {
			return err
		}

		level := slog.LevelInfo
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default flightgrid.yaml)")
	pf.String("airports", "airports.csv", "airport table CSV (code,name,city,country,lat,lon)")
	pf.String("routes", "routes.csv", "route table CSV (origin,destination,operator[,distance_km])")
	pf.Int("workers", 0, "concurrent per-source traversals (0 = one per CPU)")
	pf.Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(analyzeCmd, pathCmd, statsCmd)
}

// Execute runs the command tree under an interrupt-aware context so an
// in-flight all-pairs computation cancels cleanly between sources.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}
