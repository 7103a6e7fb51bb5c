package vehicle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fleetsolver/geometry"
	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
	"github.com/katalvlaran/fleetsolver/vehicle"
)

func smallResolved() *model.Resolved {
	return &model.Resolved{
		DistanceUnit:       model.Metre,
		TimeUnit:           model.Second,
		DefaultTravelSpeed: 1,
		Tools:              []model.Tool{{ID: "t", DefaultWorkTimeSeconds: 10, DefaultCompletionChance: 1}},
		Metrics:            []model.Metric{{ID: "d", Type: model.MetricDistance, Mode: model.Minimize, Weight: 1}},
		Places: []model.Place{
			{ID: "hub"},
			{ID: "job-1"},
		},
		HubIdx: []model.PlaceIndex{0},
		Jobs: []model.ResolvedJob{
			{PlaceIdx: 1, Tasks: []model.ResolvedTask{{Order: 1, ToolIdx: 0}}},
		},
		Workers: []model.ResolvedWorker{
			{
				ID:                "w1",
				StartHubIdx:       0,
				EndHubIdx:         0,
				TravelSpeedFactor: 1,
				Capabilities:      map[model.ToolIndex]model.ResolvedCapability{0: {ToolIdx: 0, WorkTimeFactor: 1}},
			},
		},
	}
}

func TestBuildAllProducesOneVehiclePerWorker(t *testing.T) {
	r := smallResolved()
	ng := nodegraph.Expand(r)
	geo, err := geometry.Build(r, ng)
	require.NoError(t, err)

	vehicles, err := vehicle.BuildAll(r, ng, geo, 1, nil)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)

	v := vehicles[0]
	require.NotNil(t, v.CostMatrix)
	require.Equal(t, len(ng.Nodes), v.CostMatrix.N())
}

func TestIntMatrixAddAccumulates(t *testing.T) {
	m := vehicle.NewIntMatrix(2)
	m.Set(0, 1, 5)
	m.Add(0, 1, 3)
	require.Equal(t, int64(8), m.At(0, 1))
}
