// Package vehicle implements the VehicleMatrixBuilder (spec §4.7): for each
// worker it builds a Vehicle carrying a tool-time table, a per-arc work
// matrix, per-metric value matrices, a time matrix, and the fused, scaled
// cost matrix the routing solver reads from.
//
// Per-vehicle construction is independent (spec §5: "no shared mutable state
// after per-vehicle buffers are allocated"), so BuildAll fans the work out
// with golang.org/x/sync/errgroup, one goroutine per worker, rather than
// hand-rolled WaitGroup plumbing.
package vehicle

import (
	"math/rand"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fleetsolver/geometry"
	"github.com/katalvlaran/fleetsolver/matrix"
	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
	"github.com/katalvlaran/fleetsolver/worksim"
)

// Vehicle is the solver-side twin of a worker (spec glossary).
type Vehicle struct {
	WorkerIdx model.WorkerIndex

	// ToolTimes[tool] is the seconds the driver takes to use tool, 0 if incapable.
	ToolTimes map[model.ToolIndex]int64

	// WorkMatrix[a][b] holds the completions simulated for the transit a→b.
	WorkMatrix [][][]worksim.Completion

	// MetricMatrices[metric] accumulates metric.Type's contribution per arc.
	MetricMatrices map[model.MetricIndex]*matrix.Dense

	// TimeMatrix[a,b] is the seconds consumed by transit a→b (WorkTime + TravelTime
	// metric contributions only, per spec §4.7).
	TimeMatrix *IntMatrix

	// CostMatrix is the fused, normalized, fixed-point-scaled transit cost (spec §4.7 step 4).
	CostMatrix *IntMatrix
}

// costScale is the fixed-point scale applied to the normalized cost before
// rounding to int64 (spec §3: "scale = 1,000,000").
const costScale = 1_000_000

// BuildAll builds one Vehicle per worker in r.Workers, in parallel.
func BuildAll(r *model.Resolved, ng *nodegraph.Graph, geo *geometry.Matrices, seed int64, logger hclog.Logger) ([]*Vehicle, error) {
	n := len(ng.Nodes)
	vehicles := make([]*Vehicle, len(r.Workers))

	g := new(errgroup.Group)
	for wi := range r.Workers {
		wi := wi
		g.Go(func() error {
			rng := worksim.NewRNG(deriveSeed(seed, uint64(wi)))
			v, err := buildVehicle(r, ng, geo, model.WorkerIndex(wi), n, rng, logger)
			if err != nil {
				return err
			}
			vehicles[wi] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fuseCosts(r, vehicles)
	return vehicles, nil
}

func buildVehicle(r *model.Resolved, ng *nodegraph.Graph, geo *geometry.Matrices, workerIdx model.WorkerIndex, n int, rng *rand.Rand, logger hclog.Logger) (*Vehicle, error) {
	worker := &r.Workers[workerIdx]

	toolTimes := make(map[model.ToolIndex]int64, len(worker.Capabilities))
	for toolIdx, capability := range worker.Capabilities {
		wt := r.Tools[toolIdx].DefaultWorkTimeSeconds
		if capability.WorkTimeOverrideSeconds != nil {
			wt = *capability.WorkTimeOverrideSeconds
		}
		toolTimes[toolIdx] = int64(wt * capability.WorkTimeFactor)
	}

	workMatrix := make([][][]worksim.Completion, n)
	metricMatrices := make(map[model.MetricIndex]*matrix.Dense, len(r.Metrics))
	for mi := range r.Metrics {
		dm, err := matrix.NewDense(n, n)
		if err != nil {
			return nil, err
		}
		metricMatrices[model.MetricIndex(mi)] = dm
	}
	timeMatrix := NewIntMatrix(n)

	for a := 0; a < n; a++ {
		workMatrix[a] = make([][]worksim.Completion, n)
		for b := 0; b < n; b++ {
			if a == b {
				continue
			}
			completions := worksim.Simulate(worker, r.Tools, ng.Nodes[b], rng, logger)
			workMatrix[a][b] = completions

			var workSeconds float64
			for _, c := range completions {
				workSeconds += c.WorkSeconds
			}

			for mi, m := range r.Metrics {
				metricIdx := model.MetricIndex(mi)
				dm := metricMatrices[metricIdx]
				switch m.Type {
				case model.MetricDistance:
					if geo.DistanceMeters != nil {
						d, _ := geo.DistanceMeters.At(a, b)
						_ = dm.Set(a, b, d)
					}
				case model.MetricWorkTime:
					_ = dm.Set(a, b, workSeconds)
					timeMatrix.Add(a, b, int64(workSeconds))
				case model.MetricTravelTime:
					if geo.TravelTimeSecs != nil {
						tt, _ := geo.TravelTimeSecs.At(a, b)
						scaled := tt / worker.TravelSpeedFactor
						_ = dm.Set(a, b, scaled)
						timeMatrix.Add(a, b, int64(scaled+0.5))
					}
				case model.MetricCustom:
					var sum float64
					for _, c := range completions {
						sum += c.EarnedRewards[metricIdx]
					}
					_ = dm.Set(a, b, sum)
				}
			}
		}
	}

	return &Vehicle{
		WorkerIdx:      workerIdx,
		ToolTimes:      toolTimes,
		WorkMatrix:     workMatrix,
		MetricMatrices: metricMatrices,
		TimeMatrix:     timeMatrix,
		CostMatrix:     NewIntMatrix(n),
	}, nil
}

// deriveSeed mixes a base seed and a vehicle index into an independent
// substream seed, the same SplitMix64-style avalanche mix the teacher's tsp
// package uses (tsp.deriveSeed) to decorrelate per-worker RNG streams.
func deriveSeed(base int64, stream uint64) int64 {
	x := uint64(base) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
