// Package worksim implements the WorkSimulator (spec §4.5-4.6): for a single
// (vehicle, node) pair it decides, task by task, whether the driver completes
// each task and what it earns, plus any place-bound "visit reward" modifiers.
//
// The simulator is pure with respect to its inputs plus RNG state (spec §4.5
// last line): it never reads global state and never mutates its arguments.
package worksim

import (
	"math/rand"

	"github.com/hashicorp/go-hclog"

	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
)

// Completion records one task (real or synthetic) that a driver finished at a
// node during a single transit's arrival.
type Completion struct {
	TaskOrder     int // 0 for the synthetic arrival pseudo-task, which sorts first
	WorkSeconds   float64
	EarnedRewards map[model.MetricIndex]float64
}

// Simulate runs the work simulator for worker arriving at node n, using tools
// for tool defaults and rng for completion draws. It never returns an error:
// an incapable worker simply completes nothing for that task (spec §4.5).
func Simulate(worker *model.ResolvedWorker, tools []model.Tool, n nodegraph.Node, rng *rand.Rand, logger hclog.Logger) []Completion {
	var out []Completion

	for _, task := range n.Tasks {
		capability, ok := worker.Capabilities[task.ToolIdx]
		if !ok {
			if logger != nil && len(task.Rewards) > 0 {
				logger.Debug("task unattempted: worker lacks capability", "tool", tools[task.ToolIdx].ID, "missedRewards", len(task.Rewards))
			}
			continue
		}

		workSeconds := tools[task.ToolIdx].DefaultWorkTimeSeconds
		if capability.WorkTimeOverrideSeconds != nil {
			workSeconds = *capability.WorkTimeOverrideSeconds
		}
		workSeconds *= capability.WorkTimeFactor

		chance := tools[task.ToolIdx].DefaultCompletionChance
		if capability.CompletionChanceOverride != nil {
			chance = *capability.CompletionChanceOverride
		}

		draw := rng.Float64()
		if draw >= chance || workSeconds <= 0 {
			if logger != nil && len(task.Rewards) > 0 {
				logger.Debug("task attempted but not completed", "tool", tools[task.ToolIdx].ID, "missedRewards", len(task.Rewards))
			}
			continue
		}

		earned := make(map[model.MetricIndex]float64, len(task.Rewards))
		for _, rw := range task.Rewards {
			rewardFactor := 1.0
			if f, ok := capability.RewardFactors[rw.MetricIdx]; ok {
				rewardFactor = f
			}
			rewardFactor *= toolFactorModifier(worker, rw.MetricIdx, task.ToolIdx)
			earned[rw.MetricIdx] += rw.Amount * rewardFactor
		}

		out = append(out, Completion{TaskOrder: task.Order, WorkSeconds: workSeconds, EarnedRewards: earned})
	}

	if visit := visitRewards(worker, n.PlaceIdx); len(visit) > 0 {
		out = append(out, Completion{TaskOrder: 0, WorkSeconds: 1, EarnedRewards: visit})
	}

	return out
}

// toolFactorModifier returns the combined multiplier from worker-level reward
// modifiers keyed by (metric, tool), defaulting to 1 (spec §4.6).
func toolFactorModifier(worker *model.ResolvedWorker, metricIdx model.MetricIndex, toolIdx model.ToolIndex) float64 {
	factor := 1.0
	for _, rm := range worker.RewardModifiers {
		if rm.MetricIdx != metricIdx || rm.ToolIdx == nil || *rm.ToolIdx != toolIdx || rm.Factor == nil {
			continue
		}
		factor *= *rm.Factor
	}
	return factor
}

// visitRewards returns the additive "visit reward" amounts earned simply by
// arriving at placeIdx, keyed by metric, from the worker's place-bound reward
// modifiers (spec §4.6). The synthetic arrival pseudo-task this backs always
// completes, per the spec's resolution of its own Open Question.
func visitRewards(worker *model.ResolvedWorker, placeIdx model.PlaceIndex) map[model.MetricIndex]float64 {
	var out map[model.MetricIndex]float64
	for _, rm := range worker.RewardModifiers {
		if rm.PlaceIdx == nil || *rm.PlaceIdx != placeIdx || rm.Amount == nil {
			continue
		}
		if out == nil {
			out = make(map[model.MetricIndex]float64, 1)
		}
		out[rm.MetricIdx] += *rm.Amount
	}
	return out
}
