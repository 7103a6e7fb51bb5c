package ingest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fleetsolver/ingest"
	"github.com/katalvlaran/fleetsolver/model"
)

const sampleDoc = `{
	"defaultTravelSpeed": 1.5,
	"distanceUnit": "metre",
	"timeUnit": "second",
	"engine": "simple",
	"hubs": [{"id": "hub-1", "x": 0, "y": 0}],
	"tools": [{"id": "drill", "defaultWorkTimeSeconds": 30, "defaultCompletionChance": 0.9}],
	"metrics": [{"id": "dist", "type": "distance", "mode": "minimize", "weight": 1}],
	"jobs": [{
		"id": "job-1", "x": 1, "y": 1,
		"windowOpen": "2026-01-01T00:00:00Z",
		"windowClose": "2026-01-01T01:00:00Z",
		"tasks": [{"id": "t1", "toolId": "drill", "rewards": [{"metricId": "dist", "amount": 5}]}]
	}],
	"guarantees": [{"workerId": "w1", "placeId": "job-1", "mustVisit": true}],
	"workers": [{
		"id": "w1",
		"startHub": "hub-1",
		"endHub": "hub-1",
		"travelSpeedFactor": 1,
		"capabilities": [{"toolId": "drill", "workTimeFactor": 1, "rewardFactors": {"dist": 2}}],
		"rewardModifiers": [{"metricId": "dist", "toolId": "drill", "factor": 1.1}]
	}]
}`

func TestDecodeFullDocument(t *testing.T) {
	p, err := ingest.Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, model.Metre, p.DistanceUnit)
	assert.Equal(t, model.Second, p.TimeUnit)
	assert.Equal(t, model.Simple, p.Engine)
	require.Len(t, p.Hubs, 1)
	assert.Equal(t, model.PlaceID("hub-1"), p.Hubs[0].ID)
	require.Len(t, p.Jobs, 1)
	require.Len(t, p.Jobs[0].Tasks, 1)
	assert.Equal(t, model.ToolID("drill"), p.Jobs[0].Tasks[0].ToolID)
	require.Len(t, p.Guarantees, 1)
	assert.True(t, p.Guarantees[0].MustVisit)

	require.Len(t, p.Workers, 1)
	w := p.Workers[0]
	assert.Equal(t, model.WorkerID("w1"), w.ID)
	assert.Equal(t, model.PlaceID("hub-1"), w.StartHub)
	require.Len(t, w.Capabilities, 1)
	assert.Equal(t, model.ToolID("drill"), w.Capabilities[0].ToolID)
	assert.Equal(t, 2.0, w.Capabilities[0].RewardFactors[model.MetricID("dist")])
	require.Len(t, w.RewardModifiers, 1)
	require.NotNil(t, w.RewardModifiers[0].ToolID)
	assert.Equal(t, model.ToolID("drill"), *w.RewardModifiers[0].ToolID)
	require.NotNil(t, w.RewardModifiers[0].Factor)
	assert.Equal(t, 1.1, *w.RewardModifiers[0].Factor)
}

func TestDecodeUnrecognizedDistanceUnit(t *testing.T) {
	_, err := ingest.Decode(strings.NewReader(`{"distanceUnit": "furlong", "timeUnit": "second"}`))
	assert.ErrorContains(t, err, "unrecognized")
}

func TestDecodeUnrecognizedMetricType(t *testing.T) {
	doc := `{
		"distanceUnit": "metre", "timeUnit": "second",
		"metrics": [{"id": "m", "type": "bogus", "mode": "minimize", "weight": 1}]
	}`
	_, err := ingest.Decode(strings.NewReader(doc))
	assert.ErrorContains(t, err, "unrecognized metric type")
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := ingest.Decode(strings.NewReader(`{not json`))
	assert.Error(t, err)
}
