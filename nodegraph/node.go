// Package nodegraph implements the NodeExpander (spec §4.3): it turns a
// validated model.Resolved into the ordered list of visitable Node values that
// every downstream matrix and the routing model are built over.
package nodegraph

import "github.com/katalvlaran/fleetsolver/model"

// Window is a node's feasible arrival interval, in seconds since TZero.
type Window struct {
	OpenSeconds  int64
	CloseSeconds int64
}

// Node is one visitable unit in the routing graph: a hub, a job's head node
// (carrying all of its non-optional tasks), or a single optional task.
type Node struct {
	ID        int
	PlaceIdx  model.PlaceIndex
	Tasks     []model.ResolvedTask
	Window    *Window
	Skippable bool
}

// Graph is the ordered node list plus the lookup tables used by the geometry,
// vehicle, precedence, routingsolver, and extract packages.
type Graph struct {
	Nodes []Node

	// HubNode[i] is the node id for resolved.HubIdx[i].
	HubNode []int
	// JobHeadNode[j] is the node id of job j's head node.
	JobHeadNode []int
}

// NodeOfPlace returns the node id of a hub or a job's head node at placeIdx.
// Optional-task nodes are not addressable by place alone since a job's place
// may host several of them; callers needing those iterate Graph.Nodes directly.
func (g *Graph) NodeOfPlace(placeIdx model.PlaceIndex, r *model.Resolved) (int, bool) {
	for i, hp := range r.HubIdx {
		if hp == placeIdx {
			return g.HubNode[i], true
		}
	}
	if ji, ok := r.JobIndexForPlace(placeIdx); ok {
		return g.JobHeadNode[ji], true
	}
	return -1, false
}
