package johnson

import "sort"

// Result holds the all-pairs distance and predecessor tables. Full paths
// are never stored — with V² ordered pairs that would be prohibitive —
// only the per-source predecessor trees; the paths package reconstructs
// concrete routes on demand.
//
// A Result is immutable after AllPairs returns and safe for concurrent
// readers.
type Result struct {
	h        map[string]float64
	dist     map[string]map[string]float64 // source → target → corrected km
	pred     map[string]map[string]string  // source → target → predecessor
	sources  []string                      // completed sources, insertion order
	complete bool
}

// Distance returns the corrected shortest distance from→to in original
// weights. ok is false when the pair is unreachable or when from was not
// among the completed sources (possible only on a partial Result).
// Distance(u, u) is (0, true) for every completed source u.
// Complexity: O(1).
func (r *Result) Distance(from, to string) (float64, bool) {
	row, ok := r.dist[from]
	if !ok {
		return 0, false
	}
	d, ok := row[to]

	return d, ok
}

// Predecessor returns the vertex immediately before to on the shortest
// path from→to. ok is false when from == to, when the pair is
// unreachable, or when from is not a completed source.
// Complexity: O(1).
func (r *Result) Predecessor(from, to string) (string, bool) {
	row, ok := r.pred[from]
	if !ok {
		return "", false
	}
	p, ok := row[to]

	return p, ok
}

// Targets returns the vertices reachable from the given source (the
// source itself included), sorted lexicographically ascending. Returns
// nil when from is not a completed source.
// Complexity: O(T log T).
func (r *Result) Targets(from string) []string {
	row, ok := r.dist[from]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(row))
	for t := range row {
		out = append(out, t)
	}
	sort.Strings(out)

	return out
}

// HasSource reports whether the per-source computation for from finished.
// Complexity: O(1).
func (r *Result) HasSource(from string) bool {
	_, ok := r.dist[from]

	return ok
}

// Sources returns the completed source vertices sorted lexicographically
// ascending. On a complete Result this is every graph vertex.
// Complexity: O(S log S).
func (r *Result) Sources() []string {
	out := make([]string, len(r.sources))
	copy(out, r.sources)
	sort.Strings(out)

	return out
}

// Complete reports whether every source finished. False only when the
// run was cancelled and a partial Result was returned.
func (r *Result) Complete() bool { return r.complete }

// Potentials returns a copy of the potential vector the run used.
// Exposed for diagnostics and for reuse via WithPotentials.
func (r *Result) Potentials() map[string]float64 {
	out := make(map[string]float64, len(r.h))
	for v, p := range r.h {
		out[v] = p
	}

	return out
}
