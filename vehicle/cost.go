package vehicle

import "github.com/katalvlaran/fleetsolver/model"

// fuseCosts implements spec §4.7 steps 1-4: find each metric's global max
// across all vehicles, normalize every vehicle's per-metric matrix against
// it, flip the normalized value for Maximize-mode metrics, weight by the
// metric's share of total configured weight, sum, and scale to fixed-point.
//
// Metrics whose global max is zero (never observed on any arc, by any
// vehicle) are skipped entirely rather than dividing by zero — their weight
// still counts toward the normalization denominator, so the remaining
// metrics keep the same shares they would have if it had been observed.
func fuseCosts(r *model.Resolved, vehicles []*Vehicle) {
	n := 0
	if len(vehicles) > 0 && vehicles[0] != nil {
		n = vehicles[0].TimeMatrix.N()
	}

	mMax := make([]float64, len(r.Metrics))
	for _, v := range vehicles {
		if v == nil {
			continue
		}
		for mi, dm := range v.MetricMatrices {
			for a := 0; a < n; a++ {
				for b := 0; b < n; b++ {
					if a == b {
						continue
					}
					val, err := dm.At(a, b)
					if err != nil {
						continue
					}
					if val > mMax[mi] {
						mMax[mi] = val
					}
				}
			}
		}
	}

	var sumWeights float64
	for _, m := range r.Metrics {
		sumWeights += m.Weight
	}

	normalizedWeight := make([]float64, len(r.Metrics))
	if sumWeights > 0 {
		for mi, m := range r.Metrics {
			normalizedWeight[mi] = m.Weight / sumWeights
		}
	}

	for _, v := range vehicles {
		if v == nil {
			continue
		}
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				if a == b {
					continue
				}
				var cost float64
				for mi, m := range r.Metrics {
					if mMax[mi] <= 0 {
						continue
					}
					dm := v.MetricMatrices[model.MetricIndex(mi)]
					val, err := dm.At(a, b)
					if err != nil {
						continue
					}
					norm := val / mMax[mi]
					if m.Mode == model.Maximize {
						norm = 1 - norm
					}
					cost += norm * normalizedWeight[mi]
				}
				v.CostMatrix.Set(a, b, int64(cost*costScale+0.5))
			}
		}
	}
}
