// Package paths reconstructs concrete routes from the predecessor tables
// produced by the johnson engine and annotates each traversed leg with the
// operators that actually serve it.
//
// Reconstruction is on demand, one pair at a time: the engine keeps only
// predecessor trees, so a path costs O(len) to rebuild and nothing to
// store. An unreachable pair is an ok=false outcome, not an error — real
// networks are only partially connected.
//
// Errors:
//
//	ErrNilGraph   - nil *core.Graph passed to Annotate.
//	ErrNilResult  - nil *johnson.Result passed to Reconstruct.
//	ErrBrokenPath - a consecutive vertex pair of the path has no leg in the
//	                graph (the path and graph do not belong together).
package paths

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flightgrid/flightgrid/core"
	"github.com/flightgrid/flightgrid/johnson"
)

// Sentinel errors for path reconstruction and annotation.
var (
	// ErrNilGraph indicates a nil *core.Graph argument.
	ErrNilGraph = errors.New("paths: graph is nil")

	// ErrNilResult indicates a nil *johnson.Result argument.
	ErrNilResult = errors.New("paths: result is nil")

	// ErrBrokenPath indicates a vertex sequence with no corresponding leg;
	// it only occurs when a path is annotated against the wrong graph.
	ErrBrokenPath = errors.New("paths: path leg not present in graph")
)

// Reconstruct walks predecessor links backward from destination to origin
// and returns the forward vertex sequence. ok is false when no
// predecessor chain connects the pair — destination unreachable from
// origin, or origin not among the result's completed sources.
//
// Reconstruct(res, u, u) is ([u], true) for any completed source u.
// Complexity: O(len(path)).
func Reconstruct(res *johnson.Result, origin, destination string) ([]string, bool) {
	if res == nil || !res.HasSource(origin) {
		return nil, false
	}
	if origin == destination {
		return []string{origin}, true
	}
	if _, reachable := res.Distance(origin, destination); !reachable {
		return nil, false
	}

	// Backward walk, then reverse into origin→destination order.
	path := []string{destination}
	for cur := destination; cur != origin; {
		prev, ok := res.Predecessor(origin, cur)
		if !ok {
			return nil, false // chain does not close back to origin
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, true
}

// Segment is one traversed leg of a reconstructed path, annotated with
// the operator set serving it. Operators is shared with the graph and
// must be treated as read-only.
type Segment struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	DistanceKm float64  `json:"distanceKm"`
	Operators  []string `json:"operators"`
}

// Annotate looks up each consecutive vertex pair of path in the original
// (non-reweighted) graph and emits one Segment per leg. A path with fewer
// than two vertices yields no segments and no error.
// Complexity: O(len(path)).
func Annotate(g *core.Graph, path []string) ([]Segment, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if len(path) < 2 {
		return nil, nil
	}

	segs := make([]Segment, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		l, ok := g.Leg(path[i], path[i+1])
		if !ok {
			return nil, fmt.Errorf("%w: %s→%s", ErrBrokenPath, path[i], path[i+1])
		}
		segs = append(segs, Segment{
			From:       l.From,
			To:         l.To,
			DistanceKm: l.DistanceKm,
			Operators:  l.Operators,
		})
	}

	return segs, nil
}

// Transitions counts the operator transition points of an annotated path:
// boundaries where a segment's operator set does not intersect its
// predecessor's, i.e. where a traveler is forced to change carriers.
// Complexity: O(Σ operator-set sizes).
func Transitions(segs []Segment) int {
	count := 0
	for i := 1; i < len(segs); i++ {
		if !operatorsIntersect(segs[i-1].Operators, segs[i].Operators) {
			count++
		}
	}

	return count
}

// operatorsIntersect reports a common element of two sorted operator sets.
func operatorsIntersect(a, b []string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}

	return false
}

// TotalDistance sums the original-weight distances of the segments.
func TotalDistance(segs []Segment) float64 {
	total := 0.0
	for _, s := range segs {
		total += s.DistanceKm
	}

	return total
}

// Format renders a vertex sequence as "GRU → VCP → MIA".
func Format(path []string) string {
	return strings.Join(path, " → ")
}
