package localsolver

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/fleetsolver/routingsolver"
)

// route is one vehicle's ordered node-id sequence, always starting and ending
// at that worker's start/end hub.
type route struct {
	nodes   []int
	finish  []int64 // finish[i] is the cumulative seconds when nodes[i]'s work completes
	vehicle int

	// startBound/endBound are the worker's [earliestStart-T0, latestEnd-T0]
	// cumulative bounds (spec §4.9 step 3), clamped to >=0; endBound is
	// math.MaxInt64 when the worker set no latestEnd.
	startBound int64
	endBound   int64
}

type builder struct {
	m       *routingsolver.Model
	routes  []*route
	visited map[int]bool // node id -> already placed in some route
}

func newBuilder(m *routingsolver.Model) *builder {
	b := &builder{m: m, visited: make(map[int]bool, len(m.Graph.Nodes))}
	b.routes = make([]*route, len(m.Vehicles))
	for vi, v := range m.Vehicles {
		worker := &m.Resolved.Workers[v.WorkerIdx]
		startNode, _ := m.Graph.NodeOfPlace(worker.StartHubIdx, m.Resolved)
		endNode, _ := m.Graph.NodeOfPlace(worker.EndHubIdx, m.Resolved)

		startBound := clampedSeconds(worker.EarliestStart, m.Resolved.TZero)
		endBound := int64(math.MaxInt64)
		if worker.LatestEnd != nil {
			endBound = clampedSeconds(worker.LatestEnd, m.Resolved.TZero)
		}

		b.routes[vi] = &route{
			nodes:      []int{startNode, endNode},
			finish:     []int64{startBound, startBound},
			vehicle:    vi,
			startBound: startBound,
			endBound:   endBound,
		}
		b.visited[startNode] = true
	}
	return b
}

// clampedSeconds converts t to seconds since tZero, clamped to >=0 (spec
// §4.9 step 3: "clamped to ≥0"); a nil t yields 0.
func clampedSeconds(t *time.Time, tZero time.Time) int64 {
	if t == nil {
		return 0
	}
	s := int64(t.Sub(tZero).Seconds())
	if s < 0 {
		return 0
	}
	return s
}

// insertionCandidate is the best place to insert a node into one route.
type insertionCandidate struct {
	routeIdx int
	pos      int // insert after nodes[pos]
	delta    int64
	feasible bool
}

// bestInsertion scans every position in every eligible vehicle's route for
// node, returning the cheapest feasible one.
func (b *builder) bestInsertion(node int) (insertionCandidate, bool) {
	best := insertionCandidate{delta: -1}
	found := false

	eligible := b.m.Eligibility.Vehicles[node]
	for _, vi := range eligible {
		r := b.routes[vi]
		v := b.m.Vehicles[vi]
		for pos := 0; pos < len(r.nodes)-1; pos++ {
			a, c := r.nodes[pos], r.nodes[pos+1]
			if !b.m.Precedence.IsValid(a, node) || !b.m.Precedence.IsValid(node, c) {
				continue
			}
			finishAtNode, ok := b.feasibleInsertAt(r, pos, node)
			if !ok {
				continue
			}
			_ = finishAtNode
			removed := v.CostMatrix.At(a, c)
			added := v.CostMatrix.At(a, node) + v.CostMatrix.At(node, c)
			delta := added - removed
			if !found || delta < best.delta {
				best = insertionCandidate{routeIdx: vi, pos: pos, delta: delta, feasible: true}
				found = true
			}
		}
	}
	return best, found
}

// feasibleInsertAt checks whether inserting node after r.nodes[pos] keeps
// every downstream node's arrival within its window, given vehicle v's
// TimeMatrix. It returns the recomputed finish time at node itself.
func (b *builder) feasibleInsertAt(r *route, pos int, node int) (int64, bool) {
	v := b.m.Vehicles[r.vehicle]
	prevFinish := r.finish[pos]
	a := r.nodes[pos]

	finishAtNode := prevFinish + v.TimeMatrix.At(a, node)
	if w := b.m.Graph.Nodes[node].Window; w != nil {
		if finishAtNode > w.CloseSeconds {
			return 0, false
		}
		if finishAtNode < w.OpenSeconds {
			finishAtNode = w.OpenSeconds
		}
	}

	// re-chain the remainder of the route from node onward.
	prev := node
	prevF := finishAtNode
	for i := pos + 1; i < len(r.nodes); i++ {
		next := r.nodes[i]
		f := prevF + v.TimeMatrix.At(prev, next)
		if w := b.m.Graph.Nodes[next].Window; w != nil {
			if f > w.CloseSeconds {
				return 0, false
			}
			if f < w.OpenSeconds {
				f = w.OpenSeconds
			}
		}
		if i == len(r.nodes)-1 && f > r.endBound {
			return 0, false // violates the worker's latestEnd bound
		}
		prev = next
		prevF = f
	}

	return finishAtNode, true
}

// applyInsertion commits the chosen candidate, recomputing every downstream
// finish time in that route.
func (b *builder) applyInsertion(node int, cand insertionCandidate) {
	r := b.routes[cand.routeIdx]
	nodes := make([]int, 0, len(r.nodes)+1)
	nodes = append(nodes, r.nodes[:cand.pos+1]...)
	nodes = append(nodes, node)
	nodes = append(nodes, r.nodes[cand.pos+1:]...)
	r.nodes = nodes
	b.recomputeFinish(r)
	b.visited[node] = true
}

func (b *builder) recomputeFinish(r *route) {
	v := b.m.Vehicles[r.vehicle]
	finish := make([]int64, len(r.nodes))
	finish[0] = r.startBound
	for i := 1; i < len(r.nodes); i++ {
		f := finish[i-1] + v.TimeMatrix.At(r.nodes[i-1], r.nodes[i])
		if w := b.m.Graph.Nodes[r.nodes[i]].Window; w != nil && f < w.OpenSeconds {
			f = w.OpenSeconds
		}
		finish[i] = f
	}
	r.finish = finish
}

// assignRequired places every non-skippable job head node into a route. A job
// head node is identified by its Window (only head nodes carry one; hubs and
// optional-task nodes never do), not by whether it has any required tasks: a
// non-optional job whose tasks are all optional still has a head node with an
// empty task list, but it carries the job's arrival window and must still be
// visited like any other required node.
func (b *builder) assignRequired(ctx context.Context) error {
	var required []int
	for i, n := range b.m.Graph.Nodes {
		if n.Window != nil && !n.Skippable {
			required = append(required, i)
		}
	}
	sort.Ints(required)

	for _, node := range required {
		if len(b.m.Eligibility.Vehicles[node]) == 0 {
			return fmt.Errorf("%w: node %d", routingsolver.ErrNoViableWorker, node)
		}
	}

	remaining := append([]int(nil), required...)
	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return routingsolver.ErrSolverTimeout
		}

		bestIdx, bestCand, found := -1, insertionCandidate{}, false
		for i, node := range remaining {
			cand, ok := b.bestInsertion(node)
			if !ok {
				continue
			}
			if !found || cand.delta < bestCand.delta {
				bestIdx, bestCand, found = i, cand, true
			}
		}
		if !found {
			return fmt.Errorf("%w: no feasible insertion for remaining required nodes", routingsolver.ErrSolverInfeasible)
		}

		b.applyInsertion(remaining[bestIdx], bestCand)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return nil
}

// assignOptional repeatedly inserts whichever remaining skippable node has
// the cheapest feasible insertion, stopping once no remaining node's
// insertion cost beats its disjunction penalty. Processing nodes in
// best-first rather than node-id order matters here: two optional nodes
// competing for the same limited slot (e.g. one arrival window that fits
// only one visit) must resolve in favor of whichever is actually cheaper to
// serve, not whichever happens to have a lower id.
func (b *builder) assignOptional(ctx context.Context) {
	var optional []int
	for i, n := range b.m.Graph.Nodes {
		if n.Skippable {
			optional = append(optional, i)
		}
	}
	sort.Ints(optional)

	remaining := append([]int(nil), optional...)
	for len(remaining) > 0 {
		if ctx.Err() != nil {
			return
		}

		bestIdx, bestCand, found := -1, insertionCandidate{}, false
		for i, node := range remaining {
			cand, ok := b.bestInsertion(node)
			if !ok {
				continue
			}
			if penalty, hasPenalty := b.m.DisjunctionPenalty[node]; hasPenalty && cand.delta >= penalty {
				continue
			}
			if !found || cand.delta < bestCand.delta {
				bestIdx, bestCand, found = i, cand, true
			}
		}
		if !found {
			return // nothing left is both feasible and worth its penalty
		}

		b.applyInsertion(remaining[bestIdx], bestCand)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
}

func (b *builder) assignment() *routingsolver.Assignment {
	out := &routingsolver.Assignment{Routes: make([][]routingsolver.Visit, len(b.routes))}
	var total int64

	for vi, r := range b.routes {
		visits := make([]routingsolver.Visit, len(r.nodes))
		for i, node := range r.nodes {
			visits[i] = routingsolver.Visit{VehicleIdx: vi, NodeID: node, ArrivalSecond: r.finish[i]}
		}
		out.Routes[vi] = visits
		v := b.m.Vehicles[vi]
		for i := 1; i < len(r.nodes); i++ {
			total += v.CostMatrix.At(r.nodes[i-1], r.nodes[i])
		}
	}

	for i, n := range b.m.Graph.Nodes {
		if n.Skippable && !b.visited[i] {
			out.SkippedNodes = append(out.SkippedNodes, i)
		}
	}

	out.TotalCost = total
	return out
}
