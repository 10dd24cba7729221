// Package core defines the central Graph, Airport, and Leg types and the
// validated Build constructor that turns raw route records into an
// immutable directed airline network.
//
// A Graph is built exactly once and never mutated afterwards: all mutating
// state lives inside Build, and every accessor returns either a value copy
// or data that callers must treat as read-only. Re-running an analysis on
// an updated network means building a new Graph.
//
// This file declares Airport, Leg, RouteRecord, the sentinel errors, the
// ValidationError type, and the BuildOption configuration knobs.
//
// Errors:
//
//	ErrEmptyCode          - airport code is the empty string.
//	ErrBadCoordinates     - latitude/longitude missing, non-finite, or out of range.
//	ErrMissingMetadata    - airport record lacks city or country.
//	ErrCoordinateMismatch - two records for one code disagree on position.
//	ErrBadDistance        - route distance is NaN or infinite.
//	ErrMissingAirport     - route endpoint has no airport record.
//	ErrNoOperator         - route record carries an empty operator identifier.
//	ErrSelfLoop           - route origin equals destination.
//	ErrDistanceMismatch   - merged parallel routes disagree on distance.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction. Every construction failure is
// surfaced as a *ValidationError wrapping one of these, so callers can
// branch with errors.Is while still seeing the offending record.
var (
	// ErrEmptyCode indicates an airport record with an empty IATA-style code.
	ErrEmptyCode = errors.New("core: airport code is empty")

	// ErrBadCoordinates indicates a latitude outside [-90, 90], a longitude
	// outside [-180, 180], or a non-finite coordinate value.
	ErrBadCoordinates = errors.New("core: airport coordinates out of range")

	// ErrMissingMetadata indicates an airport record without city or country.
	ErrMissingMetadata = errors.New("core: airport metadata incomplete")

	// ErrCoordinateMismatch indicates two records for the same airport code
	// whose coordinates differ beyond the configured tolerance.
	ErrCoordinateMismatch = errors.New("core: conflicting coordinates for airport")

	// ErrBadDistance indicates a route distance that is NaN or ±Inf.
	// Negative finite distances are accepted: the shortest-path engine is
	// general over mixed-sign weights, and rejecting them here would
	// silently narrow it.
	ErrBadDistance = errors.New("core: route distance is not a finite number")

	// ErrMissingAirport indicates a route whose endpoint has no entry in the
	// airport table.
	ErrMissingAirport = errors.New("core: route endpoint has no airport record")

	// ErrNoOperator indicates a route record with an empty operator.
	ErrNoOperator = errors.New("core: route has no operator")

	// ErrSelfLoop indicates a route whose origin equals its destination.
	ErrSelfLoop = errors.New("core: route origin equals destination")

	// ErrDistanceMismatch indicates parallel routes between one ordered pair
	// whose distances differ beyond the merge epsilon. Parallel routes are
	// merged, never averaged; a real disagreement is an input defect.
	ErrDistanceMismatch = errors.New("core: conflicting distances for parallel routes")
)

// Airport is a graph vertex: an airport code plus the metadata the
// downstream classifier needs (country drives the domestic flag).
type Airport struct {
	// Code uniquely identifies the airport within its Graph, e.g. "GRU".
	Code string

	// Name is the human-readable airport name. Optional.
	Name string

	// City is the served city. Required.
	City string

	// Country is the ISO-style country name or code. Required; the
	// codeshare classifier compares origin and destination countries.
	Country string

	// Latitude in decimal degrees, [-90, 90].
	Latitude float64

	// Longitude in decimal degrees, [-180, 180].
	Longitude float64
}

// RouteRecord is one raw input row: a directed route flown by a single
// operator. Build merges parallel records for the same ordered pair into
// one Leg whose operator set is the union.
type RouteRecord struct {
	// Origin and Destination are airport codes that must exist in the
	// airport table passed to Build.
	Origin      string
	Destination string

	// DistanceKm is the pre-computed great-circle distance. The core never
	// derives distances from coordinates; that is the ingestion layer's job.
	DistanceKm float64

	// Operator identifies the carrier flying this route, e.g. "G3".
	Operator string
}

// Leg is a directed edge of the built Graph: an ordered airport pair, its
// distance, and the full set of operators serving it.
//
// Operators is sorted ascending and deduplicated. Callers must treat the
// slice as read-only; Graph accessors share it rather than copy it.
type Leg struct {
	From       string
	To         string
	DistanceKm float64
	Operators  []string
}

// OperatedBy reports whether op serves this leg.
// Complexity: O(log len(Operators)) via binary search over the sorted set.
func (l Leg) OperatedBy(op string) bool {
	lo, hi := 0, len(l.Operators)
	for lo < hi {
		mid := (lo + hi) / 2
		if l.Operators[mid] < op {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo < len(l.Operators) && l.Operators[lo] == op
}

// SharesOperator reports whether this leg and other have at least one
// operator in common. Both operator sets are sorted, so a single merge
// walk suffices. Complexity: O(len(a) + len(b)).
func (l Leg) SharesOperator(other Leg) bool {
	i, j := 0, 0
	for i < len(l.Operators) && j < len(other.Operators) {
		switch {
		case l.Operators[i] == other.Operators[j]:
			return true
		case l.Operators[i] < other.Operators[j]:
			i++
		default:
			j++
		}
	}

	return false
}

// ValidationError reports a malformed or inconsistent input record. It
// wraps one of the package sentinel errors and carries enough context to
// locate the offending airport or route.
type ValidationError struct {
	// Code is set when the failure concerns an airport record.
	Code string

	// From/To are set when the failure concerns a route record.
	From, To string

	// Err is the sentinel cause, available to errors.Is.
	Err error

	// Detail is a human-readable elaboration (observed vs. expected values).
	Detail string
}

// Error renders the failure with its record context.
func (e *ValidationError) Error() string {
	switch {
	case e.Code != "":
		return fmt.Sprintf("%v: %s (airport %s)", e.Err, e.Detail, e.Code)
	case e.From != "" || e.To != "":
		return fmt.Sprintf("%v: %s (route %s→%s)", e.Err, e.Detail, e.From, e.To)
	default:
		return fmt.Sprintf("%v: %s", e.Err, e.Detail)
	}
}

// Unwrap exposes the sentinel cause for errors.Is / errors.As.
func (e *ValidationError) Unwrap() error { return e.Err }

// Default construction tolerances. Both are overridable via BuildOption.
const (
	// DefaultCoordTolerance is the maximum per-axis coordinate disagreement
	// (decimal degrees) tolerated between duplicate airport records.
	DefaultCoordTolerance = 0.01

	// DefaultDistanceEpsilon is the maximum distance disagreement (km)
	// tolerated between merged parallel routes.
	DefaultDistanceEpsilon = 1.0
)

// buildConfig collects the Build knobs; see BuildOption constructors.
type buildConfig struct {
	coordTolerance  float64
	distanceEpsilon float64
}

// BuildOption configures Build behavior.
type BuildOption func(*buildConfig)

// WithCoordTolerance overrides the duplicate-airport coordinate tolerance
// (decimal degrees, per axis). Panics if tol is negative: a negative
// tolerance is a programming error, not an input condition.
func WithCoordTolerance(tol float64) BuildOption {
	return func(c *buildConfig) {
		if tol < 0 {
			panic("core: coordinate tolerance must be non-negative")
		}
		c.coordTolerance = tol
	}
}

// WithDistanceEpsilon overrides the parallel-route merge epsilon (km).
// Panics if eps is negative.
func WithDistanceEpsilon(eps float64) BuildOption {
	return func(c *buildConfig) {
		if eps < 0 {
			panic("core: distance epsilon must be non-negative")
		}
		c.distanceEpsilon = eps
	}
}

// defaultBuildConfig returns the tolerances used when no option overrides them.
func defaultBuildConfig() buildConfig {
	return buildConfig{
		coordTolerance:  DefaultCoordTolerance,
		distanceEpsilon: DefaultDistanceEpsilon,
	}
}
