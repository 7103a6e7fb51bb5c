package routingsolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
	"github.com/katalvlaran/fleetsolver/routingsolver"
)

// eligibilityFixture builds a hub plus three single-task jobs against three
// workers: w0 and w1 both hold the required tool, w2 does not. Job 0 carries
// a must-visit guarantee for w1, job 1 carries a must-not-visit guarantee for
// w0, job 2 carries no guarantee at all (spec §8 invariants 8 and 9).
func eligibilityFixture() (*model.Resolved, *nodegraph.Graph) {
	r := &model.Resolved{
		Tools: []model.Tool{{ID: "t", DefaultWorkTimeSeconds: 10, DefaultCompletionChance: 1}},
		Places: []model.Place{
			{ID: "hub"},
			{ID: "job-0"},
			{ID: "job-1"},
			{ID: "job-2"},
		},
		HubIdx: []model.PlaceIndex{0},
		Jobs: []model.ResolvedJob{
			{PlaceIdx: 1, Tasks: []model.ResolvedTask{{Order: 1, ToolIdx: 0}}},
			{PlaceIdx: 2, Tasks: []model.ResolvedTask{{Order: 1, ToolIdx: 0}}},
			{PlaceIdx: 3, Tasks: []model.ResolvedTask{{Order: 1, ToolIdx: 0}}},
		},
		Workers: []model.ResolvedWorker{
			{ID: "w0", Capabilities: map[model.ToolIndex]model.ResolvedCapability{0: {ToolIdx: 0, WorkTimeFactor: 1}}},
			{ID: "w1", Capabilities: map[model.ToolIndex]model.ResolvedCapability{0: {ToolIdx: 0, WorkTimeFactor: 1}}},
			{ID: "w2", Capabilities: map[model.ToolIndex]model.ResolvedCapability{}},
		},
		GuaranteesByPlace: map[model.PlaceIndex][]model.ResolvedGuarantee{
			1: {{WorkerIdx: 1, PlaceIdx: 1, MustVisit: true}},
			2: {{WorkerIdx: 0, PlaceIdx: 2, MustVisit: false}},
		},
	}
	ng := nodegraph.Expand(r)
	return r, ng
}

func TestBuildEligibilityMustVisitIntersectsToExactlyOneWorker(t *testing.T) {
	r, ng := eligibilityFixture()
	e := routingsolver.BuildEligibility(r, ng)

	// job-0's head node: w1 is both capable and must-visit, but the
	// must-visit guarantee must still narrow the set to exactly {w1} even
	// though w0 is independently capable (spec §8 invariant 9).
	node := ng.JobHeadNode[0]
	assert.Equal(t, []int{1}, e.Vehicles[node])
}

func TestBuildEligibilityMustNotVisitExcludesWorker(t *testing.T) {
	r, ng := eligibilityFixture()
	e := routingsolver.BuildEligibility(r, ng)

	// job-1's head node: w0 is capable but must-not-visit; w2 is incapable
	// regardless. Only w1 remains.
	node := ng.JobHeadNode[1]
	assert.Equal(t, []int{1}, e.Vehicles[node])
}

func TestBuildEligibilityExcludesIncapableWorker(t *testing.T) {
	r, ng := eligibilityFixture()
	e := routingsolver.BuildEligibility(r, ng)

	// job-2's head node: no guarantees at all, so eligibility is pure
	// capability — w2 lacks the required tool and must not appear (spec §8
	// invariant 8).
	node := ng.JobHeadNode[2]
	assert.Equal(t, []int{0, 1}, e.Vehicles[node])
}
