package routingsolver

import (
	"sort"

	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
)

// BuildEligibility computes, for every node, which workers may visit it (spec
// §4.9): a worker is eligible by default if it holds a positive-completion-
// chance capability for every one of the node's tasks (hubs and any node
// with no tasks are eligible to every worker). Guarantees override this, but
// only at a job's head node (or a hub) — a job's optional-task nodes are a
// finer-grained choice the solver makes per task, not a place-level override,
// so a must-visit/must-not-visit guarantee binds the job as a whole via its
// head node rather than each of its optional nodes individually. A must-visit
// guarantee replaces the set with exactly that worker, regardless of
// capability; a must-not-visit
// guarantee removes it regardless of everything else — applied must-visit
// first, must-not-visit last, so "must not" wins any conflict.
func BuildEligibility(r *model.Resolved, ng *nodegraph.Graph) Eligibility {
	e := Eligibility{Vehicles: make(map[int][]int, len(ng.Nodes))}

	isGuaranteeTarget := make(map[int]bool, len(ng.HubNode)+len(ng.JobHeadNode))
	for _, h := range ng.HubNode {
		isGuaranteeTarget[h] = true
	}
	for _, h := range ng.JobHeadNode {
		isGuaranteeTarget[h] = true
	}

	for i, n := range ng.Nodes {
		set := make(map[int]bool, len(r.Workers))

		if len(n.Tasks) == 0 {
			for wi := range r.Workers {
				set[wi] = true
			}
		} else {
			for wi := range r.Workers {
				if workerCanAttempt(&r.Workers[wi], n) {
					set[wi] = true
				}
			}
		}

		if isGuaranteeTarget[i] {
			mustVisit := -1
			for _, g := range r.GuaranteesByPlace[n.PlaceIdx] {
				if g.MustVisit {
					mustVisit = int(g.WorkerIdx)
				}
			}
			if mustVisit >= 0 {
				// A must-visit guarantee replaces the eligible set with exactly
				// the guaranteed worker (spec §8 invariant 9): every other
				// capability-eligible worker is removed, not just added to.
				set = map[int]bool{mustVisit: true}
			}
			for _, g := range r.GuaranteesByPlace[n.PlaceIdx] {
				if !g.MustVisit {
					delete(set, int(g.WorkerIdx))
				}
			}
		}

		list := make([]int, 0, len(set))
		for wi := range set {
			list = append(list, wi)
		}
		sort.Ints(list) // map iteration order is random; fix it so tie-break order in the solver is deterministic
		e.Vehicles[i] = list
	}

	return e
}

// workerCanAttempt reports whether w can service every task at n (spec §4.9:
// "a capability ... for every non-optional task's tool"), not merely one of
// them — a node with several required tasks needs a worker capable of all of
// them, not just any single one.
func workerCanAttempt(w *model.ResolvedWorker, n nodegraph.Node) bool {
	for _, task := range n.Tasks {
		capability, ok := w.Capabilities[task.ToolIdx]
		if !ok {
			return false
		}
		if capability.CompletionChanceOverride != nil && *capability.CompletionChanceOverride <= 0 {
			return false
		}
		// tool default chance is validated > 0 at load time when no override is set.
	}
	return true
}

// BuildDisjunctionPenalties computes, for every skippable node, the cost of
// leaving it unvisited: 1,000,000 × (number of tasks at the node + 1), per
// spec §4.9 — the +1 keeps a zero-task optional node (a standalone arrival
// pseudo-stop) from being free to skip.
func BuildDisjunctionPenalties(ng *nodegraph.Graph) map[int]int64 {
	const unit = 1_000_000
	out := make(map[int]int64)
	for i, n := range ng.Nodes {
		if !n.Skippable {
			continue
		}
		out[i] = unit * int64(len(n.Tasks)+1)
	}
	return out
}
