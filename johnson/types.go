// Package johnson implements Johnson's all-pairs shortest-path algorithm
// over a core.Graph with arbitrary mixed-sign leg weights.
//
// The pipeline runs in three strictly ordered phases:
//
//  1. Potentials — Bellman-Ford from a conceptual auxiliary source wired
//     to every vertex by a zero-weight edge; fails with NegativeCycleError
//     if a reachable negative cycle exists.
//  2. Reweight — every leg weight w(u,v) becomes w + h(u) − h(v), which is
//     provably non-negative when phase 1 succeeded.
//  3. AllPairs — an independent Dijkstra traversal per source vertex over
//     the reweighted legs, fanned out across a bounded worker pool, with
//     each finite distance corrected back via d = d' + h(v) − h(s).
//
// Unreachable pairs are (value, ok) outcomes on the Result, never numeric
// sentinels. Cancelling the context aborts between per-source units; the
// already-finished sources are returned as a valid partial Result together
// with the context error, never silently as a complete table.
//
// This file declares the sentinel errors, NegativeCycleError, and the
// functional options for AllPairs.
package johnson

import (
	"context"
	"errors"
	"runtime"
	"strings"
)

// Sentinel errors returned by the Johnson pipeline.
var (
	// ErrNilGraph indicates a nil *core.Graph argument.
	ErrNilGraph = errors.New("johnson: graph is nil")

	// ErrNegativeCycle indicates a negative-weight cycle reachable from the
	// auxiliary source. Match with errors.Is; the concrete error is a
	// *NegativeCycleError carrying the cycle vertices.
	ErrNegativeCycle = errors.New("johnson: negative-weight cycle detected")

	// ErrIncompletePotentials indicates a potential vector that lacks an
	// entry for some graph vertex (only possible with WithPotentials).
	ErrIncompletePotentials = errors.New("johnson: potential vector does not cover all vertices")

	// ErrCancelled wraps the context error when an all-pairs run is cut
	// short; the accompanying Result is valid but partial.
	ErrCancelled = errors.New("johnson: all-pairs computation cancelled")
)

// NegativeCycleError reports the vertices of a negative-weight cycle, in
// traversal order with the first vertex repeated at the end.
type NegativeCycleError struct {
	Cycle []string
}

// Error renders the cycle as A → B → C → A.
func (e *NegativeCycleError) Error() string {
	return "johnson: negative-weight cycle reachable from auxiliary source: " +
		strings.Join(e.Cycle, " → ")
}

// Unwrap lets errors.Is(err, ErrNegativeCycle) succeed.
func (e *NegativeCycleError) Unwrap() error { return ErrNegativeCycle }

// Options configures AllPairs.
//
// Ctx        – cancellation scope for the per-source worker pool.
// Workers    – number of concurrent per-source Dijkstra traversals.
// Potentials – precomputed potential vector; skips the Bellman-Ford phase.
type Options struct {
	Ctx        context.Context
	Workers    int
	Potentials map[string]float64
}

// Option is a functional option for AllPairs.
type Option func(*Options)

// WithContext sets the cancellation context for the all-pairs run.
// Cancellation is observed between per-source units of work.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.Ctx = ctx }
}

// WithWorkers bounds the worker pool to n concurrent sources.
// Panics if n < 1; use the default for "one worker per CPU".
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic("johnson: worker count must be positive")
		}
		o.Workers = n
	}
}

// WithPotentials supplies a precomputed potential vector, e.g. from an
// earlier Potentials call on the same Graph. The vector must cover every
// vertex (ErrIncompletePotentials otherwise). Useful when one Graph is
// analyzed repeatedly.
func WithPotentials(h map[string]float64) Option {
	return func(o *Options) { o.Potentials = h }
}

// DefaultOptions returns the AllPairs defaults: background context, one
// worker per available CPU, potentials computed in-call.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Workers: runtime.GOMAXPROCS(0),
	}
}

// normalize fills zero values so the engine never branches on them.
func (o *Options) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
}
