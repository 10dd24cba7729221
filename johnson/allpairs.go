package johnson

import (
	"container/heap"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/flightgrid/flightgrid/core"
)

// AllPairs computes shortest distances and predecessor trees between every
// ordered vertex pair of g, using Johnson's reweighting so mixed-sign leg
// weights are handled by plain Dijkstra traversals.
//
// Phases, strictly ordered:
//
//  1. Obtain potentials (Options.Potentials, or Potentials(g) — failing
//     fast on a negative cycle before any Dijkstra work starts).
//  2. Build the reweighted adjacency once; it is shared read-only by all
//     workers.
//  3. Run one Dijkstra per source vertex across an errgroup pool of
//     Options.Workers goroutines. Sources share no mutable state: each
//     worker owns its frontier and visited set and writes into the slot of
//     the results slice reserved for its source index.
//  4. Correct each finite distance back to original weights via
//     d(s,v) = d'(s,v) + h(v) − h(s).
//
// Determinism: per-source traversals break frontier ties by vertex
// insertion order, so the Result is identical for any worker count.
//
// Cancellation: when Options.Ctx is cancelled, no further sources start;
// sources already finished form a valid partial Result which is returned
// together with an error matching both ErrCancelled and the context cause.
//
// Complexity: O(V·E + V·(V+E) log V) time, O(V²) space for the tables.
func AllPairs(g *core.Graph, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.normalize()

	if g == nil {
		return nil, ErrNilGraph
	}

	// Phase 1: potentials. Fail fast on negative cycles.
	h := cfg.Potentials
	if h == nil {
		var err error
		if h, err = Potentials(g); err != nil {
			return nil, err
		}
	}

	codes := g.VertexOrder()
	n := len(codes)
	id := make(map[string]int, n)
	hv := make([]float64, n) // potentials indexed by insertion order
	for i, c := range codes {
		id[c] = i
		p, ok := h[c]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrIncompletePotentials, c)
		}
		hv[i] = p
	}

	// Phase 2: reweighted adjacency, built once, read-only afterwards.
	adj := make([][]arc, n)
	for i, c := range codes {
		for _, l := range g.OutLegs(c) {
			j := id[l.To]
			adj[i] = append(adj[i], arc{to: j, w: l.DistanceKm + hv[i] - hv[j]})
		}
	}

	// Phase 3: per-source Dijkstra over the worker pool. Each source owns
	// the slice slot at its own index — disjoint writes, no locks.
	trees := make([]sourceTree, n)
	grp, ctx := errgroup.WithContext(cfg.Ctx)
	grp.SetLimit(cfg.Workers)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break // stop scheduling new sources once cancelled
		}
		i := i
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err // cancelled between per-source units
			}
			trees[i] = runSource(i, n, adj)

			return nil
		})
	}
	waitErr := grp.Wait()

	// Phase 4: correction and table assembly from completed slots only.
	res := &Result{
		h:    h,
		dist: make(map[string]map[string]float64, n),
		pred: make(map[string]map[string]string, n),
	}
	for s, tree := range trees {
		if !tree.done {
			continue
		}
		dist := make(map[string]float64, n)
		pred := make(map[string]string, n)
		for v := 0; v < n; v++ {
			if math.IsInf(tree.dist[v], 1) {
				continue // unreachable: no table entry, never a sentinel
			}
			dist[codes[v]] = tree.dist[v] + hv[v] - hv[s]
			if tree.pred[v] >= 0 {
				pred[codes[v]] = codes[tree.pred[v]]
			}
		}
		res.dist[codes[s]] = dist
		res.pred[codes[s]] = pred
		res.sources = append(res.sources, codes[s])
	}
	res.complete = len(res.sources) == n
	if waitErr == nil && !res.complete {
		// Cancelled before the pool could even start the missing sources;
		// no worker observed the cancellation, so surface it here.
		waitErr = cfg.Ctx.Err()
	}

	if waitErr != nil {
		return res, fmt.Errorf("%w after %d of %d sources: %w",
			ErrCancelled, len(res.sources), n, waitErr)
	}

	return res, nil
}

// sourceTree holds one finished per-source traversal in dense form.
// dist is over reweighted legs (+Inf = unreachable); pred is the
// insertion index of the predecessor, -1 for the source and unreachable
// vertices.
type sourceTree struct {
	done bool
	dist []float64
	pred []int32
}

// arc is one reweighted outgoing leg in the dense adjacency.
type arc struct {
	to int
	w  float64
}

// runSource executes a standard Dijkstra traversal from source s over the
// shared reweighted adjacency. Lazy decrease-key: improved distances push
// duplicate heap entries and stale pops are skipped via the visited set.
// Frontier ties break by vertex insertion index for determinism.
func runSource(s, n int, adj [][]arc) sourceTree {
	dist := make([]float64, n)
	pred := make([]int32, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		pred[i] = -1
	}
	dist[s] = 0

	pq := make(frontier, 0, n)
	heap.Init(&pq)
	heap.Push(&pq, frontierItem{v: s, d: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(frontierItem)
		if visited[item.v] {
			continue // stale entry from a superseded push
		}
		visited[item.v] = true

		for _, a := range adj[item.v] {
			if cand := dist[item.v] + a.w; cand < dist[a.to] {
				dist[a.to] = cand
				pred[a.to] = int32(item.v)
				heap.Push(&pq, frontierItem{v: a.to, d: cand})
			}
		}
	}

	return sourceTree{done: true, dist: dist, pred: pred}
}

// frontierItem is one (vertex, tentative distance) heap entry.
type frontierItem struct {
	v int
	d float64
}

// frontier is the min-heap priority queue for one Dijkstra traversal,
// ordered by distance ascending, then vertex insertion index.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].d != f[j].d {
		return f[i].d < f[j].d
	}

	return f[i].v < f[j].v
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]

	return item
}
