package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightgrid/flightgrid/codeshare"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Detect codeshare opportunities across the whole network",
	RunE:  runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.Float64("min-distance", 0, "minimum pair distance in km (overrides config)")
	f.Float64("max-distance", 0, "maximum pair distance in km, 0 = unlimited (overrides config)")
	f.Int("max-stops", 0, "maximum intermediate stops, -1 = unlimited (overrides config)")
	f.Bool("suppress-single-operator", false, "drop pairs with an equal-length single-carrier nonstop")
	f.String("format", "", "output format: table or json (overrides config)")
	f.Bool("hubs", false, "also report connection-hub usage counts")
}

// analyzeThresholds merges the config defaults with explicit flags.
func analyzeThresholds(cmd *cobra.Command) codeshare.Thresholds {
	th := codeshare.Thresholds{
		MinDistanceKm:          cfg.Analyze.MinDistanceKm,
		MaxDistanceKm:          cfg.Analyze.MaxDistanceKm,
		MaxStops:               cfg.Analyze.MaxStops,
		SuppressSingleOperator: cfg.Analyze.SuppressSingleOperator,
	}

	f := cmd.Flags()
	if f.Changed("min-distance") {
		th.MinDistanceKm, _ = f.GetFloat64("min-distance")
	}
	if f.Changed("max-distance") {
		th.MaxDistanceKm, _ = f.GetFloat64("max-distance")
	}
	if f.Changed("max-stops") {
		th.MaxStops, _ = f.GetInt("max-stops")
	}
	if f.Changed("suppress-single-operator") {
		th.SuppressSingleOperator, _ = f.GetBool("suppress-single-operator")
	}

	return th
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	g, err := buildGraph()
	if err != nil {
		return err
	}

	res, err := runAllPairs(cmd.Context(), g)
	if err != nil {
		return err
	}

	th := analyzeThresholds(cmd)
	opps, err := codeshare.Classify(g, res, th)
	if err != nil {
		return err
	}
	slog.Info("classification finished", "opportunities", len(opps))

	format := cfg.Analyze.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}

	switch format {
	case "json":
		if err := writeJSON(os.Stdout, opps); err != nil {
			return err
		}
	case "table", "":
		renderOpportunities(os.Stdout, opps)
	default:
		return fmt.Errorf("cli: unknown format %q (want table or json)", format)
	}

	if hubs, _ := cmd.Flags().GetBool("hubs"); hubs {
		renderHubs(os.Stdout, codeshare.ConnectionHubs(opps))
	}

	return nil
}
