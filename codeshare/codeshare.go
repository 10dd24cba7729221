// Package codeshare classifies the shortest paths of an all-pairs result
// into codeshare opportunities: origin-destination pairs whose optimal
// routing crosses more than one operator's legs.
//
// The classifier performs no shortest-path computation of its own — it
// consumes the johnson engine's output exclusively, keeping "find optimal
// routes" and "judge their commercial value" separate.
//
// Errors:
//
//	ErrNilGraph     - nil *core.Graph argument.
//	ErrNilResult    - nil *johnson.Result argument.
//	ErrBadThreshold - negative or inverted distance bounds.
package codeshare

import (
	"errors"
	"fmt"
	"sort"

	"github.com/flightgrid/flightgrid/core"
	"github.com/flightgrid/flightgrid/johnson"
	"github.com/flightgrid/flightgrid/paths"
)

// Sentinel errors for classification.
var (
	// ErrNilGraph indicates a nil *core.Graph argument.
	ErrNilGraph = errors.New("codeshare: graph is nil")

	// ErrNilResult indicates a nil *johnson.Result argument.
	ErrNilResult = errors.New("codeshare: all-pairs result is nil")

	// ErrBadThreshold indicates a negative distance bound, or a maximum
	// below the minimum.
	ErrBadThreshold = errors.New("codeshare: invalid thresholds")
)

// NoStopLimit disables the stop-count cap in Thresholds.MaxStops.
const NoStopLimit = -1

// Thresholds bounds which pairs are commercially relevant. The zero value
// of each distance field means "no limit for that dimension".
type Thresholds struct {
	// MinDistanceKm drops pairs shorter than this. 0 = no minimum.
	MinDistanceKm float64

	// MaxDistanceKm drops pairs longer than this. 0 = no maximum.
	MaxDistanceKm float64

	// MaxStops drops paths with more than this many intermediate stops.
	// Negative (NoStopLimit) = no cap. Note the zero value caps at
	// non-stop routes, which by construction never qualify; use
	// DefaultThresholds for an unbounded starting point.
	MaxStops int

	// SuppressSingleOperator drops a pair when the network offers an
	// equally short routing a single carrier could serve alone — i.e. a
	// direct leg whose distance ties the multi-leg shortest path. The
	// engine keeps one shortest path per pair, so this is the tie the
	// classifier can still see without redoing any shortest-path work.
	// Off by default: any mixed-operator shortest path qualifies.
	SuppressSingleOperator bool
}

// DefaultThresholds returns thresholds with every dimension unbounded.
func DefaultThresholds() Thresholds {
	return Thresholds{MaxStops: NoStopLimit}
}

// validate rejects meaningless bounds.
func (t Thresholds) validate() error {
	if t.MinDistanceKm < 0 || t.MaxDistanceKm < 0 {
		return fmt.Errorf("%w: negative distance bound", ErrBadThreshold)
	}
	if t.MaxDistanceKm > 0 && t.MaxDistanceKm < t.MinDistanceKm {
		return fmt.Errorf("%w: max %g km below min %g km", ErrBadThreshold, t.MaxDistanceKm, t.MinDistanceKm)
	}

	return nil
}

// Opportunity is one qualifying origin-destination pair: its shortest
// routing necessarily involves more than one operator.
type Opportunity struct {
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	DistanceKm  float64         `json:"distanceKm"`
	Stops       int             `json:"stops"`
	Domestic    bool            `json:"domestic"`
	Transitions int             `json:"transitions"`
	Segments    []paths.Segment `json:"segments"`
}

// Classify scans every ordered pair with a finite distance in res,
// reconstructs and annotates its shortest path against g, and keeps the
// pairs with at least one operator transition that satisfy th.
//
// Ranking is fully deterministic: ascending distance, then ascending stop
// count, then lexicographic (origin, destination).
//
// Complexity: O(P·len(path)) over reachable pairs P, plus the final sort.
func Classify(g *core.Graph, res *johnson.Result, th Thresholds) ([]Opportunity, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if res == nil {
		return nil, ErrNilResult
	}
	if err := th.validate(); err != nil {
		return nil, err
	}

	var opps []Opportunity
	for _, origin := range res.Sources() {
		originAirport, _ := g.Airport(origin)
		for _, destination := range res.Targets(origin) {
			if destination == origin {
				continue
			}
			opp, ok, err := analyzePair(g, res, origin, destination, th)
			if err != nil {
				return nil, err
			}
			if ok {
				destAirport, _ := g.Airport(destination)
				opp.Domestic = originAirport.Country == destAirport.Country
				opps = append(opps, opp)
			}
		}
	}

	sort.Slice(opps, func(i, j int) bool {
		a, b := opps[i], opps[j]
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		if a.Stops != b.Stops {
			return a.Stops < b.Stops
		}
		if a.Origin != b.Origin {
			return a.Origin < b.Origin
		}

		return a.Destination < b.Destination
	})

	return opps, nil
}

// analyzePair reconstructs, annotates, and filters a single ordered pair.
// ok is false when the pair does not qualify.
func analyzePair(g *core.Graph, res *johnson.Result, origin, destination string, th Thresholds) (Opportunity, bool, error) {
	distance, reachable := res.Distance(origin, destination)
	if !reachable {
		return Opportunity{}, false, nil
	}
	if distance < th.MinDistanceKm {
		return Opportunity{}, false, nil
	}
	if th.MaxDistanceKm > 0 && distance > th.MaxDistanceKm {
		return Opportunity{}, false, nil
	}

	path, ok := paths.Reconstruct(res, origin, destination)
	if !ok {
		return Opportunity{}, false, nil
	}
	segs, err := paths.Annotate(g, path)
	if err != nil {
		return Opportunity{}, false, err
	}

	stops := len(segs) - 1
	if th.MaxStops >= 0 && stops > th.MaxStops {
		return Opportunity{}, false, nil
	}

	transitions := paths.Transitions(segs)
	if transitions == 0 {
		return Opportunity{}, false, nil // single-operator-connected routing
	}
	if th.SuppressSingleOperator && hasEqualNonstop(g, origin, destination, distance) {
		return Opportunity{}, false, nil
	}

	return Opportunity{
		Origin:      origin,
		Destination: destination,
		DistanceKm:  distance,
		Stops:       stops,
		Transitions: transitions,
		Segments:    segs,
	}, true, nil
}

// distanceTieEpsilon absorbs floating-point drift when comparing a direct
// leg against a corrected multi-leg distance.
const distanceTieEpsilon = 1e-6

// hasEqualNonstop reports whether a direct leg ties the shortest distance
// for the pair. A single leg is always servable by any one of its
// operators, so an equal-length nonstop makes the codeshare optional.
func hasEqualNonstop(g *core.Graph, origin, destination string, distance float64) bool {
	l, ok := g.Leg(origin, destination)

	return ok && l.DistanceKm <= distance+distanceTieEpsilon
}

// ConnectionHubs counts how often each airport appears as an intermediate
// connection point across the given opportunities — the airports that
// would host the actual inter-carrier handovers.
func ConnectionHubs(opps []Opportunity) map[string]int {
	hubs := make(map[string]int)
	for _, opp := range opps {
		for _, seg := range opp.Segments[1:] {
			hubs[seg.From]++
		}
	}

	return hubs
}
