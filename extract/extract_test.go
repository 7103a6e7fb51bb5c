package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fleetsolver/extract"
	"github.com/katalvlaran/fleetsolver/geometry"
	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
	"github.com/katalvlaran/fleetsolver/routingsolver"
	"github.com/katalvlaran/fleetsolver/vehicle"
)

func fixture(t *testing.T) (*model.Resolved, *nodegraph.Graph, []*vehicle.Vehicle) {
	t.Helper()
	r := &model.Resolved{
		DistanceUnit:       model.Metre,
		TimeUnit:           model.Second,
		DefaultTravelSpeed: 1,
		Tools:              []model.Tool{{ID: "t", DefaultWorkTimeSeconds: 1, DefaultCompletionChance: 1}},
		Metrics:            []model.Metric{{ID: "d", Type: model.MetricDistance, Mode: model.Minimize, Weight: 1}},
		Places:             []model.Place{{ID: "hub"}, {ID: "job-1"}},
		HubIdx:             []model.PlaceIndex{0},
		Jobs:               []model.ResolvedJob{{PlaceIdx: 1, Tasks: []model.ResolvedTask{{Order: 1, ToolIdx: 0}}}},
		Workers: []model.ResolvedWorker{{
			ID: "w1", StartHubIdx: 0, EndHubIdx: 0, TravelSpeedFactor: 1,
			Capabilities: map[model.ToolIndex]model.ResolvedCapability{0: {ToolIdx: 0, WorkTimeFactor: 1}},
		}},
	}
	ng := nodegraph.Expand(r)
	geo, err := geometry.Build(r, ng)
	require.NoError(t, err)
	vehicles, err := vehicle.BuildAll(r, ng, geo, 1, nil)
	require.NoError(t, err)
	return r, ng, vehicles
}

func TestBuildResultEmptyAssignment(t *testing.T) {
	r, ng, vehicles := fixture(t)
	a := &routingsolver.Assignment{Routes: make([][]routingsolver.Visit, len(vehicles))}

	res := extract.BuildResult(r, ng, vehicles, a)
	assert.Empty(t, res.Visits)
	assert.Zero(t, res.TotalCost)
}

func TestBuildResultSkippedJobTracked(t *testing.T) {
	r, ng, vehicles := fixture(t)
	a := &routingsolver.Assignment{
		Routes:       make([][]routingsolver.Visit, len(vehicles)),
		SkippedNodes: []int{ng.JobHeadNode[0]},
	}

	res := extract.BuildResult(r, ng, vehicles, a)
	require.Len(t, res.SkippedJobs, 1)
	assert.Equal(t, model.JobID("job-1"), res.SkippedJobs[0])
}

func TestBuildResultEmitsTimestampsRewardsAndTasks(t *testing.T) {
	r := &model.Resolved{
		DistanceUnit:       model.Metre,
		TimeUnit:           model.Second,
		DefaultTravelSpeed: 1,
		Tools:              []model.Tool{{ID: "t", DefaultWorkTimeSeconds: 5, DefaultCompletionChance: 1}},
		Metrics: []model.Metric{
			{ID: "d", Type: model.MetricDistance, Mode: model.Minimize, Weight: 1},
			{ID: "r", Type: model.MetricCustom, Mode: model.Maximize, Weight: 1},
		},
		Places: []model.Place{{ID: "hub"}, {ID: "job-1"}},
		HubIdx: []model.PlaceIndex{0},
		Jobs: []model.ResolvedJob{{
			PlaceIdx: 1,
			Tasks:    []model.ResolvedTask{{ID: "task-1", Order: 1, ToolIdx: 0, Rewards: []model.ResolvedReward{{MetricIdx: 1, Amount: 5}}}},
		}},
		Workers: []model.ResolvedWorker{{
			ID: "w1", StartHubIdx: 0, EndHubIdx: 0, TravelSpeedFactor: 1,
			Capabilities: map[model.ToolIndex]model.ResolvedCapability{0: {ToolIdx: 0, WorkTimeFactor: 1}},
		}},
	}
	ng := nodegraph.Expand(r)
	geo, err := geometry.Build(r, ng)
	require.NoError(t, err)
	vehicles, err := vehicle.BuildAll(r, ng, geo, 1, nil)
	require.NoError(t, err)

	hubNode, jobNode := ng.HubNode[0], ng.JobHeadNode[0]
	a := &routingsolver.Assignment{
		Routes: [][]routingsolver.Visit{{
			{VehicleIdx: 0, NodeID: hubNode, ArrivalSecond: 0},
			{VehicleIdx: 0, NodeID: jobNode, ArrivalSecond: 1},
			{VehicleIdx: 0, NodeID: hubNode, ArrivalSecond: 7},
		}},
	}

	res := extract.BuildResult(r, ng, vehicles, a)
	require.Len(t, res.Visits, 3)

	depart, arrive, end := res.Visits[0], res.Visits[1], res.Visits[2]

	assert.Nil(t, depart.ArrivalTime)
	require.NotNil(t, depart.DepartureTime)
	assert.Equal(t, model.PlaceID("hub"), depart.PlaceID)

	require.NotNil(t, arrive.ArrivalTime)
	require.NotNil(t, arrive.DepartureTime)
	assert.Equal(t, model.PlaceID("job-1"), arrive.PlaceID)
	assert.Equal(t, []string{"task-1"}, arrive.CompletedTasks)
	assert.Equal(t, 5.0, arrive.EarnedRewards[model.MetricID("r")])
	assert.Equal(t, arrive.ArrivalTime.Add(5*time.Second), *arrive.DepartureTime)

	require.NotNil(t, end.ArrivalTime)
	assert.Nil(t, end.DepartureTime)
	assert.Equal(t, model.PlaceID("hub"), end.PlaceID)
}
