// Package geometry implements the GeometryEngine (spec §4.4): it builds the
// N×N distance and travel-time matrices over the node graph. Matrix storage
// is the teacher's matrix.Dense (row-major flat float64 slice, bounds-checked
// At/Set) — the same type vehicle.BuildAll reads from.
package geometry

import (
	"errors"
	"math"

	"github.com/katalvlaran/fleetsolver/matrix"
	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
	"github.com/katalvlaran/fleetsolver/units"
)

// ErrNotImplemented is returned when Osrm engine mode is requested: real
// road-network routing is an explicit Non-goal (spec §1, §7).
var ErrNotImplemented = errors.New("geometry: engine mode not implemented")

// Matrices holds the engine's two outputs. Either field may be nil when no
// metric requires it (spec §4.4).
type Matrices struct {
	DistanceMeters  *matrix.Dense
	TravelTimeSecs *matrix.Dense
}

// Build constructs Matrices for the node graph ng over resolved problem r.
func Build(r *model.Resolved, ng *nodegraph.Graph) (*Matrices, error) {
	hasDistance := hasMetricType(r.Metrics, model.MetricDistance)
	hasTravelTime := hasMetricType(r.Metrics, model.MetricTravelTime)

	if !hasDistance && !hasTravelTime {
		return &Matrices{}, nil
	}

	if r.Engine == model.Osrm {
		return nil, ErrNotImplemented
	}

	n := len(ng.Nodes)
	mPerUnit := units.MetersPerUnit(r.DistanceUnit)
	secPerUnit := units.SecondsPerUnit(r.TimeUnit)

	var distance, travelTime *matrix.Dense
	var err error
	if hasDistance {
		if distance, err = matrix.NewDense(n, n); err != nil {
			return nil, err
		}
	}
	if hasTravelTime {
		if travelTime, err = matrix.NewDense(n, n); err != nil {
			return nil, err
		}
	}

	for a := 0; a < n; a++ {
		pa := r.Places[ng.Nodes[a].PlaceIdx]
		for b := 0; b < n; b++ {
			if a == b {
				continue
			}
			pb := r.Places[ng.Nodes[b].PlaceIdx]
			manhattan := manhattanDistance(pa, pb)
			if distance != nil {
				_ = distance.Set(a, b, manhattan*mPerUnit)
			}
			if travelTime != nil {
				_ = travelTime.Set(a, b, (manhattan/r.DefaultTravelSpeed)*secPerUnit) // bounds-safe write
			}
		}
	}

	return &Matrices{DistanceMeters: distance, TravelTimeSecs: travelTime}, nil
}

// manhattanDistance returns 0 when either place lacks a location, per spec §4.4.
func manhattanDistance(a, b model.Place) float64 {
	if !a.HasLocation() || !b.HasLocation() {
		return 0
	}
	return math.Abs(*a.X-*b.X) + math.Abs(*a.Y-*b.Y)
}

func hasMetricType(metrics []model.Metric, t model.MetricType) bool {
	for _, m := range metrics {
		if m.Type == t {
			return true
		}
	}
	return false
}
