package johnson

import (
	"fmt"

	"github.com/flightgrid/flightgrid/core"
)

// Potentials computes the vertex potential vector h via Bellman-Ford from
// a conceptual auxiliary source q wired to every vertex by a zero-weight
// directed edge. h(v) is the shortest distance from q to v; with
// non-negative inputs every h(v) is 0, but the general form is kept so the
// engine stays correct over arbitrary mixed-sign weights.
//
// The auxiliary vertex is never materialized: seeding every distance to 0
// is exactly the state after relaxing q's zero-weight edges once, and q
// has no incoming edges so they never need relaxing again.
//
// Fails with *NegativeCycleError (matching ErrNegativeCycle) when one more
// relaxation pass after |V| full rounds still improves some distance; the
// error carries the cycle's vertices for diagnosis.
//
// Complexity: O(V·E) time, O(V) space.
func Potentials(g *core.Graph) (map[string]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	n := g.VertexCount()
	h := make(map[string]float64, n)
	if n == 0 {
		return h, nil
	}

	// After conceptually relaxing q→v (weight 0) for every v.
	for _, v := range g.VertexOrder() {
		h[v] = 0
	}

	// pred tracks the relaxing edge for negative-cycle extraction only.
	pred := make(map[string]string, n)
	legs := g.Legs() // sorted (From, To): deterministic relaxation order

	// |V| full rounds over the real edges (the auxiliary graph has V+1
	// vertices, so V rounds — not V−1 — are required before detection).
	for round := 0; round < n; round++ {
		changed := false
		for _, l := range legs {
			if cand := h[l.From] + l.DistanceKm; cand < h[l.To] {
				h[l.To] = cand
				pred[l.To] = l.From
				changed = true
			}
		}
		if !changed {
			break // fixpoint; further rounds cannot relax anything
		}
	}

	// Detection pass: any remaining improvement proves a reachable
	// negative cycle.
	for _, l := range legs {
		if h[l.From]+l.DistanceKm < h[l.To] {
			pred[l.To] = l.From

			return nil, &NegativeCycleError{Cycle: extractCycle(pred, l.To, n)}
		}
	}

	return h, nil
}

// extractCycle walks predecessor links from a vertex known to sit on or
// behind a negative cycle. Walking n steps guarantees landing inside the
// cycle; a second walk collects it.
func extractCycle(pred map[string]string, start string, n int) []string {
	v := start
	for i := 0; i < n; i++ {
		v = pred[v]
	}

	cycle := []string{v}
	for u := pred[v]; u != v; u = pred[u] {
		cycle = append(cycle, u)
	}
	cycle = append(cycle, v)

	// pred walks backwards; reverse into traversal order.
	for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
		cycle[i], cycle[j] = cycle[j], cycle[i]
	}

	return cycle
}

// ReweightedLeg is one leg with its Johnson-transformed weight
// w' = w + h(from) − h(to). The original Graph is untouched; reweighted
// weights exist only in these transient copies.
type ReweightedLeg struct {
	From   string
	To     string
	Weight float64
}

// Reweight produces the transformed weight for every leg of g under the
// potential vector h. When h came from a successful Potentials run, every
// returned weight is ≥ 0 — a tested property, not an assumption.
//
// Fails with ErrIncompletePotentials if h lacks an entry for any vertex.
// Output is sorted by (From, To). Complexity: O(V + E log E).
func Reweight(g *core.Graph, h map[string]float64) ([]ReweightedLeg, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	for _, v := range g.VertexOrder() {
		if _, ok := h[v]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrIncompletePotentials, v)
		}
	}

	legs := g.Legs()
	out := make([]ReweightedLeg, 0, len(legs))
	for _, l := range legs {
		out = append(out, ReweightedLeg{
			From:   l.From,
			To:     l.To,
			Weight: l.DistanceKm + h[l.From] - h[l.To],
		})
	}

	return out, nil
}
