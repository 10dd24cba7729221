package core

import "sort"

// leg is the internal adjacency cell; the public Leg view is assembled on
// access so the endpoints never live twice in memory.
type leg struct {
	distanceKm float64
	operators  []string
}

// Graph is the immutable directed airline network.
//
// It is safe for concurrent readers without locking: Build is the only
// writer and finishes before the Graph escapes. Accessors returning
// slices either copy (Vertices, OutLegs, Legs) or share data callers must
// treat as read-only (Leg.Operators).
type Graph struct {
	airports map[string]Airport
	order    []string       // codes in insertion order
	index    map[string]int // code → insertion position
	// adj[from][to] holds the single merged leg for the ordered pair.
	adj      map[string]map[string]*leg
	legCount int
}

// HasVertex reports whether code is an airport of this graph.
// Complexity: O(1).
func (g *Graph) HasVertex(code string) bool {
	_, ok := g.airports[code]

	return ok
}

// Airport returns the airport record for code.
// Complexity: O(1).
func (g *Graph) Airport(code string) (Airport, bool) {
	a, ok := g.airports[code]

	return a, ok
}

// Vertices returns all airport codes sorted lexicographically ascending.
// The slice is a fresh copy. Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	sort.Strings(out)

	return out
}

// VertexOrder returns all airport codes in insertion order (first
// appearance in the airports slice passed to Build). The shortest-path
// engine keys its deterministic tie-breaking off this order.
// The slice is a fresh copy. Complexity: O(V).
func (g *Graph) VertexOrder() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)

	return out
}

// VertexIndex returns the insertion position of code, or -1 if absent.
// Complexity: O(1).
func (g *Graph) VertexIndex(code string) int {
	i, ok := g.index[code]
	if !ok {
		return -1
	}

	return i
}

// HasLeg reports whether a directed leg from→to exists.
// Complexity: O(1).
func (g *Graph) HasLeg(from, to string) bool {
	bucket, ok := g.adj[from]
	if !ok {
		return false
	}
	_, ok = bucket[to]

	return ok
}

// Leg returns the merged leg for the ordered pair from→to. The returned
// Operators slice is shared and must not be mutated.
// Complexity: O(1).
func (g *Graph) Leg(from, to string) (Leg, bool) {
	bucket, ok := g.adj[from]
	if !ok {
		return Leg{}, false
	}
	l, ok := bucket[to]
	if !ok {
		return Leg{}, false
	}

	return Leg{From: from, To: to, DistanceKm: l.distanceKm, Operators: l.operators}, true
}

// OutLegs returns every leg departing from, sorted by destination code for
// deterministic iteration. Returns nil for an unknown vertex.
// Complexity: O(d log d) for out-degree d.
func (g *Graph) OutLegs(from string) []Leg {
	bucket, ok := g.adj[from]
	if !ok {
		return nil
	}

	out := make([]Leg, 0, len(bucket))
	for to, l := range bucket {
		out = append(out, Leg{From: from, To: to, DistanceKm: l.distanceKm, Operators: l.operators})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })

	return out
}

// Legs returns every leg of the graph sorted by (From, To).
// Complexity: O(L log L).
func (g *Graph) Legs() []Leg {
	out := make([]Leg, 0, g.legCount)
	for from, bucket := range g.adj {
		for to, l := range bucket {
			out = append(out, Leg{From: from, To: to, DistanceKm: l.distanceKm, Operators: l.operators})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}

		return out[i].To < out[j].To
	})

	return out
}

// VertexCount returns the number of airports. Complexity: O(1).
func (g *Graph) VertexCount() int { return len(g.order) }

// LegCount returns the number of merged directed legs. Complexity: O(1).
func (g *Graph) LegCount() int { return g.legCount }

// Stats summarizes the network shape: counts, directed density, mean
// out-degree, and the number of distinct operators across all legs.
type Stats struct {
	Airports     int
	Legs         int
	Operators    int
	Density      float64 // legs / (V·(V-1)); 0 for V < 2
	AvgOutDegree float64 // legs / V; 0 for an empty graph
}

// Stats computes a snapshot of the network metrics.
// Complexity: O(V + L·k) for operator-set size k.
func (g *Graph) Stats() Stats {
	s := Stats{Airports: len(g.order), Legs: g.legCount}

	ops := make(map[string]struct{})
	for _, bucket := range g.adj {
		for _, l := range bucket {
			for _, op := range l.operators {
				ops[op] = struct{}{}
			}
		}
	}
	s.Operators = len(ops)

	if v := float64(s.Airports); v >= 2 {
		s.Density = float64(s.Legs) / (v * (v - 1))
	}
	if s.Airports > 0 {
		s.AvgOutDegree = float64(s.Legs) / float64(s.Airports)
	}

	return s
}
