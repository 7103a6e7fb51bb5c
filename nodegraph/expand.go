package nodegraph

import (
	"time"

	"github.com/katalvlaran/fleetsolver/model"
)

// Expand builds the ordered Node list for r: one bare node per hub (in the
// order hubs were declared), then per job one head node carrying its required
// tasks followed by one node per optional task in ascending task order.
//
// Mirrors the teacher's deterministic, index-stable construction style (e.g.
// builder.Grid's row-major vertex emission): node ids are consecutive integers
// assigned in a single fixed pass, never reordered afterward.
func Expand(r *model.Resolved) *Graph {
	g := &Graph{
		HubNode:     make([]int, len(r.HubIdx)),
		JobHeadNode: make([]int, len(r.Jobs)),
	}

	nextID := 0
	alloc := func(n Node) int {
		n.ID = nextID
		g.Nodes = append(g.Nodes, n)
		nextID++
		return n.ID
	}

	for i, hubPlace := range r.HubIdx {
		g.HubNode[i] = alloc(Node{PlaceIdx: hubPlace})
	}

	for ji, job := range r.Jobs {
		required := make([]model.ResolvedTask, 0, len(job.Tasks))
		var optional []model.ResolvedTask
		for _, t := range job.Tasks {
			if t.Optional {
				optional = append(optional, t)
			} else {
				required = append(required, t)
			}
		}

		g.JobHeadNode[ji] = alloc(Node{
			PlaceIdx:  job.PlaceIdx,
			Tasks:     required,
			Window:    &Window{OpenSeconds: toSeconds(job.WindowOpen, r.TZero), CloseSeconds: toSeconds(job.WindowClose, r.TZero)},
			Skippable: job.Optional,
		})

		// optional already ascending by Order since job.Tasks was built in task order.
		for _, t := range optional {
			alloc(Node{
				PlaceIdx:  job.PlaceIdx,
				Tasks:     []model.ResolvedTask{t},
				Skippable: true,
			})
		}
	}

	return g
}

func toSeconds(t, tZero time.Time) int64 {
	return int64(t.Sub(tZero).Seconds())
}
