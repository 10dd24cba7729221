// Package flightgrid analyzes multi-operator airline networks: all-pairs
// shortest paths over great-circle route distances, and detection of the
// origin-destination pairs whose optimal routing crosses more than one
// carrier — codeshare opportunities.
//
// The library is organized as a pipeline of small packages, each consuming
// the previous one's output:
//
//	core/      — immutable directed route graph with per-leg operator sets,
//	             built once from validated airport and route records
//	johnson/   — Johnson's algorithm: Bellman-Ford potentials from an
//	             auxiliary source, non-negative reweighting, parallel
//	             per-source Dijkstra, distance correction
//	paths/     — path reconstruction from predecessor tables and per-segment
//	             operator annotation
//	codeshare/ — threshold-filtered, deterministically ranked codeshare
//	             opportunity records
//
// The cmd/flightgrid CLI wraps the pipeline with CSV ingestion, YAML/env
// configuration, and table or JSON reporting.
//
// Design guarantees:
//
//   - Graphs are values: built once, never mutated, safe to share across
//     goroutines. A network update means building a new Graph.
//   - Mixed-sign edge weights are supported; a reachable negative cycle is
//     detected up front and reported with the offending cycle, never
//     returned as a silently wrong distance.
//   - Unreachable pairs are explicit (value, ok) outcomes, not sentinel
//     numbers and not errors.
//   - All outputs are deterministic for a fixed input, regardless of the
//     worker count used for the all-pairs phase.
//
//	go get github.com/flightgrid/flightgrid
package flightgrid
