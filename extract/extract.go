// Package extract implements the SolutionExtractor (spec §4.10): it turns a
// routingsolver.Assignment back into wire-shaped, unit-converted results.
package extract

import (
	"sort"
	"time"

	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
	"github.com/katalvlaran/fleetsolver/routingsolver"
	"github.com/katalvlaran/fleetsolver/units"
	"github.com/katalvlaran/fleetsolver/vehicle"
	"github.com/katalvlaran/fleetsolver/worksim"
)

// Visit is one stop on a worker's realized route. ArrivalTime is unset for
// the visit that only records leaving the start hub; DepartureTime is unset
// for the visit that only records arriving at the ending hub (spec §4.10).
type Visit struct {
	PlaceID        model.PlaceID              `json:"placeId"`
	WorkerID       model.WorkerID             `json:"workerId"`
	ArrivalTime    *time.Time                 `json:"arrivalTime,omitempty"`
	DepartureTime  *time.Time                 `json:"departureTime,omitempty"`
	EarnedRewards  map[model.MetricID]float64 `json:"earnedRewards,omitempty"`
	CompletedTasks []string                   `json:"completedTasks,omitempty"`
}

// Result is the final, wire-ready solution.
type Result struct {
	Visits       []Visit                    `json:"visits"`
	SkippedJobs  []model.JobID              `json:"skippedJobs"`
	TotalMetrics map[model.MetricID]float64 `json:"totalMetrics"`
	TotalCost    int64                      `json:"totalCost"`
}

// BuildResult assembles a Result from the solver's raw Assignment. An
// Assignment with no routes and every job's head node skipped yields a
// Result with no visits and no earned metrics — a legal outcome, not an
// error (spec §4.10: "If the solver returns no assignment, emit an empty
// itinerary and all jobs as skipped").
func BuildResult(r *model.Resolved, ng *nodegraph.Graph, vehicles []*vehicle.Vehicle, a *routingsolver.Assignment) *Result {
	res := &Result{TotalMetrics: make(map[model.MetricID]float64, len(r.Metrics))}

	for vi, routeVisits := range a.Routes {
		if len(routeVisits) < 2 {
			continue // a vehicle the solver never started (or a synthetic empty route)
		}
		v := vehicles[vi]
		workerID := r.Workers[v.WorkerIdx].ID

		res.Visits = append(res.Visits, buildVisits(r, ng, v, workerID, routeVisits)...)

		for i := 1; i < len(routeVisits); i++ {
			accumulate(res.TotalMetrics, r, v, routeVisits[i-1].NodeID, routeVisits[i].NodeID)
		}
	}

	headNode := make(map[int]model.JobID, len(ng.JobHeadNode))
	for ji, nodeID := range ng.JobHeadNode {
		headNode[nodeID] = jobID(r, model.JobIndex(ji))
	}
	for _, nodeID := range a.SkippedNodes {
		if id, ok := headNode[nodeID]; ok {
			res.SkippedJobs = append(res.SkippedJobs, id)
		}
	}

	res.TotalCost = a.TotalCost
	return res
}

// buildVisits realizes spec §4.10's visit-emission rule for one vehicle's
// route: a departure-only visit at the start hub, one arrival/completion
// visit per node entered afterward (including the ending hub, which emits
// arrival-only), with completed tasks and earned rewards pulled from
// v.WorkMatrix[a,b] for the transit into each node.
func buildVisits(r *model.Resolved, ng *nodegraph.Graph, v *vehicle.Vehicle, workerID model.WorkerID, routeVisits []routingsolver.Visit) []Visit {
	out := make([]Visit, 0, len(routeVisits))

	first := routeVisits[0]
	departure := r.TZero.Add(time.Duration(first.ArrivalSecond) * time.Second)
	out = append(out, Visit{
		PlaceID:       r.Places[ng.Nodes[first.NodeID].PlaceIdx].ID,
		WorkerID:      workerID,
		DepartureTime: &departure,
	})

	for i := 1; i < len(routeVisits); i++ {
		prevNode, curNode := routeVisits[i-1].NodeID, routeVisits[i].NodeID
		arrival := r.TZero.Add(time.Duration(routeVisits[i].ArrivalSecond) * time.Second)

		if i == len(routeVisits)-1 {
			// ending hub: arrival only, no work ever happens there.
			out = append(out, Visit{
				PlaceID:     r.Places[ng.Nodes[curNode].PlaceIdx].ID,
				WorkerID:    workerID,
				ArrivalTime: &arrival,
			})
			continue
		}

		completions := v.WorkMatrix[prevNode][curNode]
		taskNames, earned, workSeconds := summarizeCompletions(r, ng.Nodes[curNode], completions)
		departure := arrival.Add(time.Duration(workSeconds) * time.Second)

		out = append(out, Visit{
			PlaceID:        r.Places[ng.Nodes[curNode].PlaceIdx].ID,
			WorkerID:       workerID,
			ArrivalTime:    &arrival,
			DepartureTime:  &departure,
			EarnedRewards:  earned,
			CompletedTasks: taskNames,
		})
	}

	return out
}

// summarizeCompletions converts a node's raw worksim.Completion list into
// the wire-shaped completed-task id list (ordered by task order, synthetic
// arrival-reward pseudo-tasks excluded since they name no real task) and the
// merged earned-rewards map, plus the total seconds of work performed.
func summarizeCompletions(r *model.Resolved, n nodegraph.Node, completions []worksim.Completion) ([]string, map[model.MetricID]float64, float64) {
	taskByOrder := make(map[int]string, len(n.Tasks))
	for _, t := range n.Tasks {
		taskByOrder[t.Order] = t.ID
	}

	var (
		names       []string
		earned      map[model.MetricID]float64
		workSeconds float64
	)
	ordered := append([]worksim.Completion(nil), completions...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].TaskOrder < ordered[j].TaskOrder })

	for _, c := range ordered {
		workSeconds += c.WorkSeconds
		if id, ok := taskByOrder[c.TaskOrder]; ok {
			names = append(names, id)
		}
		for metricIdx, amount := range c.EarnedRewards {
			if earned == nil {
				earned = make(map[model.MetricID]float64, len(c.EarnedRewards))
			}
			earned[r.Metrics[metricIdx].ID] += amount
		}
	}
	return names, earned, workSeconds
}

func jobID(r *model.Resolved, ji model.JobIndex) model.JobID {
	// Jobs carry no surviving wire ID field once resolved (their Place.ID was
	// the job's own place id); reuse it as the stable job identifier.
	return model.JobID(r.Places[r.Jobs[ji].PlaceIdx].ID)
}

// accumulate adds arc (a,b)'s contribution to every metric's running total,
// converting Distance and TravelTime/WorkTime back to the problem's
// configured wire units (spec §4.10).
func accumulate(totals map[model.MetricID]float64, r *model.Resolved, v *vehicle.Vehicle, a, b int) {
	for mi, m := range r.Metrics {
		dm, ok := v.MetricMatrices[model.MetricIndex(mi)]
		if !ok {
			continue
		}
		val, err := dm.At(a, b)
		if err != nil {
			continue
		}
		switch m.Type {
		case model.MetricDistance:
			val = units.FromMeters(val, r.DistanceUnit)
		case model.MetricTravelTime, model.MetricWorkTime:
			val = units.FromSeconds(val, r.TimeUnit)
		}
		totals[m.ID] += val
	}
}
