package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flightgrid/flightgrid/core"
	"github.com/flightgrid/flightgrid/internal/ingest"
	"github.com/flightgrid/flightgrid/johnson"
)

// buildGraph loads the configured tables and constructs the route graph.
func buildGraph() (*core.Graph, error) {
	airports, routes, err := ingest.LoadFiles(cfg.Airports, cfg.Routes)
	if err != nil {
		return nil, err
	}
	slog.Debug("tables loaded", "airports", len(airports), "routes", len(routes))

	g, err := core.Build(airports, routes)
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}

	s := g.Stats()
	slog.Info("graph built",
		"airports", s.Airports, "legs", s.Legs,
		"operators", s.Operators, "density", fmt.Sprintf("%.4f", s.Density))

	return g, nil
}

// runAllPairs executes the engine under the command context. A cancelled
// run still returns its partial result so the caller can report progress;
// the cancellation itself is surfaced as the error.
func runAllPairs(ctx context.Context, g *core.Graph) (*johnson.Result, error) {
	start := time.Now()
	res, err := johnson.AllPairs(g,
		johnson.WithContext(ctx),
		johnson.WithWorkers(workersOrDefault()),
	)
	if err != nil {
		if errors.Is(err, johnson.ErrCancelled) {
			slog.Warn("all-pairs computation cancelled",
				"completed_sources", len(res.Sources()), "elapsed", time.Since(start))
		}

		return res, err
	}
	slog.Info("all-pairs computation finished", "elapsed", time.Since(start))

	return res, nil
}

// workersOrDefault maps the config's "0 = auto" convention onto the
// engine's option, which requires a positive count.
func workersOrDefault() int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}

	return johnson.DefaultOptions().Workers
}
