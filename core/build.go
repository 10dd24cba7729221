package core

import (
	"fmt"
	"math"
	"sort"
)

// Build validates airport and route records and constructs the immutable
// Graph. It is the only way to obtain a Graph; there is no mutable
// builder and no post-construction mutation surface.
//
// Validation, in record order (first failure aborts the whole build):
//
//  1. Airport records: non-empty code, finite in-range coordinates,
//     non-empty city and country. A duplicate code is tolerated when its
//     coordinates agree within the configured tolerance (first record
//     wins); a larger disagreement is ErrCoordinateMismatch.
//  2. Route records: finite distance (negative finite values are legal —
//     the engine handles mixed-sign weights), non-empty operator, distinct
//     endpoints, both endpoints present in the airport table.
//  3. Parallel routes for one ordered pair merge into a single Leg: the
//     operator sets union, and the distances must agree within the merge
//     epsilon (ErrDistanceMismatch otherwise). Distances are never averaged.
//
// Vertex insertion order follows first appearance in the airports slice;
// the shortest-path engine uses that order for deterministic tie-breaking.
//
// Complexity: O(A + R·k log k) time for A airports, R routes, and k the
// largest operator set of a merged leg; O(A + L) space for L merged legs.
func Build(airports []Airport, routes []RouteRecord, opts ...BuildOption) (*Graph, error) {
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Graph{
		airports: make(map[string]Airport, len(airports)),
		index:    make(map[string]int, len(airports)),
		adj:      make(map[string]map[string]*leg, len(airports)),
	}

	for _, a := range airports {
		if err := g.addAirport(a, cfg.coordTolerance); err != nil {
			return nil, err
		}
	}
	for _, r := range routes {
		if err := g.addRoute(r, cfg.distanceEpsilon); err != nil {
			return nil, err
		}
	}

	// Freeze operator sets: sorted ascending, deduplicated.
	for _, bucket := range g.adj {
		for _, l := range bucket {
			l.operators = sortedSet(l.operators)
		}
	}

	return g, nil
}

// addAirport registers one airport record, enforcing metadata and
// duplicate-coordinate rules. First record for a code wins.
func (g *Graph) addAirport(a Airport, tol float64) error {
	if a.Code == "" {
		return &ValidationError{Err: ErrEmptyCode, Detail: "airport record without code"}
	}
	if !finite(a.Latitude) || !finite(a.Longitude) ||
		a.Latitude < -90 || a.Latitude > 90 || a.Longitude < -180 || a.Longitude > 180 {
		return &ValidationError{
			Code:   a.Code,
			Err:    ErrBadCoordinates,
			Detail: fmt.Sprintf("lat=%g lon=%g", a.Latitude, a.Longitude),
		}
	}
	if a.City == "" || a.Country == "" {
		return &ValidationError{Code: a.Code, Err: ErrMissingMetadata, Detail: "city and country are required"}
	}

	if prev, ok := g.airports[a.Code]; ok {
		if math.Abs(prev.Latitude-a.Latitude) > tol || math.Abs(prev.Longitude-a.Longitude) > tol {
			return &ValidationError{
				Code: a.Code,
				Err:  ErrCoordinateMismatch,
				Detail: fmt.Sprintf("have (%g, %g), got (%g, %g), tolerance %g°",
					prev.Latitude, prev.Longitude, a.Latitude, a.Longitude, tol),
			}
		}

		return nil // same airport restated; keep the first record
	}

	g.index[a.Code] = len(g.order)
	g.order = append(g.order, a.Code)
	g.airports[a.Code] = a
	g.adj[a.Code] = make(map[string]*leg)

	return nil
}

// addRoute registers one route record, merging into an existing leg when
// the ordered pair was seen before.
func (g *Graph) addRoute(r RouteRecord, eps float64) error {
	if math.IsNaN(r.DistanceKm) || math.IsInf(r.DistanceKm, 0) {
		return &ValidationError{
			From: r.Origin, To: r.Destination,
			Err:    ErrBadDistance,
			Detail: fmt.Sprintf("distance=%v", r.DistanceKm),
		}
	}
	if r.Operator == "" {
		return &ValidationError{From: r.Origin, To: r.Destination, Err: ErrNoOperator, Detail: "empty operator identifier"}
	}
	if r.Origin == r.Destination {
		return &ValidationError{From: r.Origin, To: r.Destination, Err: ErrSelfLoop, Detail: "self-loops carry no routing meaning"}
	}
	if _, ok := g.airports[r.Origin]; !ok {
		return &ValidationError{From: r.Origin, To: r.Destination, Err: ErrMissingAirport, Detail: fmt.Sprintf("unknown origin %q", r.Origin)}
	}
	if _, ok := g.airports[r.Destination]; !ok {
		return &ValidationError{From: r.Origin, To: r.Destination, Err: ErrMissingAirport, Detail: fmt.Sprintf("unknown destination %q", r.Destination)}
	}

	bucket := g.adj[r.Origin]
	if existing, ok := bucket[r.Destination]; ok {
		// Merge rule: union operators, require distances to agree.
		if math.Abs(existing.distanceKm-r.DistanceKm) > eps {
			return &ValidationError{
				From: r.Origin, To: r.Destination,
				Err:    ErrDistanceMismatch,
				Detail: fmt.Sprintf("have %g km, got %g km, epsilon %g km", existing.distanceKm, r.DistanceKm, eps),
			}
		}
		existing.operators = append(existing.operators, r.Operator)

		return nil
	}

	bucket[r.Destination] = &leg{
		distanceKm: r.DistanceKm,
		operators:  []string{r.Operator},
	}
	g.legCount++

	return nil
}

// finite reports whether f is neither NaN nor ±Inf.
func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// sortedSet sorts ops ascending and removes duplicates in place.
func sortedSet(ops []string) []string {
	sort.Strings(ops)
	out := ops[:0]
	for i, op := range ops {
		if i == 0 || op != ops[i-1] {
			out = append(out, op)
		}
	}

	return out
}
