package localsolver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fleetsolver/geometry"
	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
	"github.com/katalvlaran/fleetsolver/precedence"
	"github.com/katalvlaran/fleetsolver/routingsolver"
	"github.com/katalvlaran/fleetsolver/routingsolver/localsolver"
	"github.com/katalvlaran/fleetsolver/vehicle"
)

func twoJobResolved() *model.Resolved {
	zero := func(x, y float64) (*float64, *float64) { return &x, &y }
	hx, hy := zero(0, 0)
	j1x, j1y := zero(1, 0)
	j2x, j2y := zero(2, 0)
	return &model.Resolved{
		DistanceUnit:       model.Metre,
		TimeUnit:           model.Second,
		DefaultTravelSpeed: 1,
		Tools:              []model.Tool{{ID: "t", DefaultWorkTimeSeconds: 1, DefaultCompletionChance: 1}},
		Metrics:            []model.Metric{{ID: "d", Type: model.MetricDistance, Mode: model.Minimize, Weight: 1}},
		Places: []model.Place{
			{ID: "hub", X: hx, Y: hy},
			{ID: "job-1", X: j1x, Y: j1y},
			{ID: "job-2", X: j2x, Y: j2y},
		},
		HubIdx: []model.PlaceIndex{0},
		Jobs: []model.ResolvedJob{
			{PlaceIdx: 1, Tasks: []model.ResolvedTask{{Order: 1, ToolIdx: 0}}},
			{PlaceIdx: 2, Tasks: []model.ResolvedTask{{Order: 1, ToolIdx: 0}}},
		},
		Workers: []model.ResolvedWorker{{
			ID: "w1", StartHubIdx: 0, EndHubIdx: 0, TravelSpeedFactor: 1,
			Capabilities: map[model.ToolIndex]model.ResolvedCapability{0: {ToolIdx: 0, WorkTimeFactor: 1}},
		}},
	}
}

func TestSolveVisitsEveryRequiredNode(t *testing.T) {
	r := twoJobResolved()
	ng := nodegraph.Expand(r)
	geo, err := geometry.Build(r, ng)
	require.NoError(t, err)
	vehicles, err := vehicle.BuildAll(r, ng, geo, 1, nil)
	require.NoError(t, err)
	prec := precedence.Build(ng)
	m := routingsolver.NewModel(r, ng, vehicles, prec)

	a, err := localsolver.New(nil).Solve(context.Background(), m)
	require.NoError(t, err)

	visited := make(map[int]bool)
	for _, route := range a.Routes {
		for _, v := range route {
			visited[v.NodeID] = true
		}
	}
	assert.True(t, visited[ng.JobHeadNode[0]])
	assert.True(t, visited[ng.JobHeadNode[1]])
}

func TestSolveNoViableWorkerForOrphanJob(t *testing.T) {
	r := twoJobResolved()
	r.Jobs[1].Tasks[0].ToolIdx = 99 // no worker holds this tool
	ng := nodegraph.Expand(r)
	geo, err := geometry.Build(r, ng)
	require.NoError(t, err)
	vehicles, err := vehicle.BuildAll(r, ng, geo, 1, nil)
	require.NoError(t, err)
	prec := precedence.Build(ng)
	m := routingsolver.NewModel(r, ng, vehicles, prec)

	_, err = localsolver.New(nil).Solve(context.Background(), m)
	assert.ErrorIs(t, err, routingsolver.ErrNoViableWorker)
}
