package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightgrid/flightgrid/paths"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the shortest route between two airports",
	RunE:  runPath,
}

func init() {
	f := pathCmd.Flags()
	f.String("from", "", "origin airport code")
	f.String("to", "", "destination airport code")
	_ = pathCmd.MarkFlagRequired("from")
	_ = pathCmd.MarkFlagRequired("to")
}

func runPath(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	g, err := buildGraph()
	if err != nil {
		return err
	}
	if !g.HasVertex(from) {
		return fmt.Errorf("cli: unknown airport %q", from)
	}
	if !g.HasVertex(to) {
		return fmt.Errorf("cli: unknown airport %q", to)
	}

	res, err := runAllPairs(cmd.Context(), g)
	if err != nil {
		return err
	}

	distance, reachable := res.Distance(from, to)
	if !reachable {
		fmt.Fprintf(os.Stdout, "No route from %s to %s\n", from, to)

		return nil
	}

	path, _ := paths.Reconstruct(res, from, to)
	segs, err := paths.Annotate(g, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Route:    %s\n", paths.Format(path))
	fmt.Fprintf(os.Stdout, "Distance: %.0f km\n", distance)
	fmt.Fprintf(os.Stdout, "Stops:    %d\n", len(segs)-1)
	renderSegments(os.Stdout, segs)

	return nil
}
