// Package validate implements the structural/semantic validation pipeline
// described in spec §4.1: it resolves a raw model.Problem into a model.Resolved,
// failing fast with a dotted-context Error the moment an invariant is violated.
//
// Order is fixed: tools → metrics → hubs → jobs (+tasks +rewards) → workers
// (+capabilities +reward modifiers) → guarantees. Each phase may assume all
// earlier phases' index tables are populated; calling a phase method before its
// predecessor ran is a programming error and panics with *ConfigurationError
// (spec §7: "ConfigurationError ... treated as a bug (abort)").
package validate

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/katalvlaran/fleetsolver/model"
)

type validator struct {
	logger hclog.Logger
	raw    *model.Problem

	toolIndex   map[model.ToolID]model.ToolIndex
	metricIndex map[model.MetricID]model.MetricIndex
	placeIndex  map[model.PlaceID]model.PlaceIndex
	workerIndex map[model.WorkerID]model.WorkerIndex

	jobOfPlace map[model.PlaceIndex]model.JobIndex

	resolved *model.Resolved
}

// Validate runs the full pipeline against p, logging diagnostics (never errors)
// to logger, and returns the resolved problem or the first *Error encountered.
func Validate(p *model.Problem, logger hclog.Logger) (*model.Resolved, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	v := &validator{logger: logger, raw: p, resolved: &model.Resolved{}}

	v.resolved.TZero = selectTZero(p)
	v.resolved.TimeoutSeconds = p.TimeoutSeconds
	v.resolved.DefaultTravelSpeed = p.DefaultTravelSpeed
	v.resolved.DistanceUnit = p.DistanceUnit
	v.resolved.TimeUnit = p.TimeUnit
	v.resolved.MaxIdleTime = p.MaxIdleTime
	v.resolved.Engine = p.Engine

	if err := v.validateTools(); err != nil {
		return nil, err
	}
	if err := v.validateMetrics(); err != nil {
		return nil, err
	}
	if err := v.validateHubs(); err != nil {
		return nil, err
	}
	if err := v.validateJobs(); err != nil {
		return nil, err
	}
	if err := v.validateWorkers(); err != nil {
		return nil, err
	}
	if err := v.validateGuarantees(); err != nil {
		return nil, err
	}

	v.resolved.SetJobOfPlace(v.jobOfPlace)
	return v.resolved, nil
}

// selectTZero implements spec §4.2. It reads only raw wire values, so it can
// run before any phase resolves handles.
func selectTZero(p *model.Problem) time.Time {
	if p.TZero != nil {
		return *p.TZero
	}
	var (
		min  time.Time
		seen bool
	)
	consider := func(t time.Time) {
		if !seen || t.Before(min) {
			min, seen = t, true
		}
	}
	for _, w := range p.Workers {
		if w.EarliestStart != nil {
			consider(*w.EarliestStart)
		}
	}
	for _, j := range p.Jobs {
		consider(j.WindowOpen)
	}
	if !seen {
		return time.Unix(0, 0).UTC() // minimum representable timestamp for this engine
	}
	return min
}

// --- tools ---------------------------------------------------------------

func (v *validator) validateTools() error {
	v.toolIndex = make(map[model.ToolID]model.ToolIndex, len(v.raw.Tools))
	v.resolved.Tools = make([]model.Tool, 0, len(v.raw.Tools))
	for i, t := range v.raw.Tools {
		ctx := fmt.Sprintf("tools[%d]", i)
		if t.ID == "" {
			return fail(ctx+".id", MissingOrEmpty)
		}
		if _, dup := v.toolIndex[t.ID]; dup {
			return fail(ctx+".id", NotUnique)
		}
		if t.DefaultWorkTimeSeconds <= 0 {
			return fail(ctx+".defaultWorkTime", LessThanOrEqualToZero)
		}
		if t.DefaultCompletionChance <= 0 || t.DefaultCompletionChance > 1 {
			return fail(ctx+".defaultCompletionChance", Invalid)
		}
		v.toolIndex[t.ID] = model.ToolIndex(len(v.resolved.Tools))
		v.resolved.Tools = append(v.resolved.Tools, t)
	}
	return nil
}

// --- metrics ---------------------------------------------------------------

func (v *validator) validateMetrics() error {
	if v.toolIndex == nil {
		panic(&ConfigurationError{Phase: "metrics", Expected: "tools"})
	}
	v.metricIndex = make(map[model.MetricID]model.MetricIndex, len(v.raw.Metrics))
	seenBuiltin := make(map[model.MetricType]bool, 3)
	v.resolved.Metrics = make([]model.Metric, 0, len(v.raw.Metrics))
	for i, m := range v.raw.Metrics {
		ctx := fmt.Sprintf("metrics[%d]", i)
		if m.ID == "" {
			return fail(ctx+".id", MissingOrEmpty)
		}
		if _, dup := v.metricIndex[m.ID]; dup {
			return fail(ctx+".id", NotUnique)
		}
		if m.Type < model.MetricDistance || m.Type > model.MetricCustom {
			return fail(ctx+".type", Unrecognized)
		}
		if m.Mode != model.Minimize && m.Mode != model.Maximize {
			return fail(ctx+".mode", Unrecognized)
		}
		if m.Weight < 0 {
			return fail(ctx+".weight", LessThanZero)
		}
		if m.Type != model.MetricCustom {
			if seenBuiltin[m.Type] {
				return fail(ctx+".type", NotUnique)
			}
			seenBuiltin[m.Type] = true
		}
		v.metricIndex[m.ID] = model.MetricIndex(len(v.resolved.Metrics))
		v.resolved.Metrics = append(v.resolved.Metrics, m)
	}
	return nil
}

// --- hubs --------------------------------------------------------------

func (v *validator) validateHubs() error {
	if v.metricIndex == nil {
		panic(&ConfigurationError{Phase: "hubs", Expected: "metrics"})
	}
	v.placeIndex = make(map[model.PlaceID]model.PlaceIndex, len(v.raw.Hubs)+len(v.raw.Jobs))
	v.resolved.Places = make([]model.Place, 0, len(v.raw.Hubs)+len(v.raw.Jobs))
	v.resolved.HubIdx = make([]model.PlaceIndex, 0, len(v.raw.Hubs))
	for i, h := range v.raw.Hubs {
		ctx := fmt.Sprintf("hubs[%d]", i)
		if h.ID == "" {
			return fail(ctx+".id", MissingOrEmpty)
		}
		if _, dup := v.placeIndex[h.ID]; dup {
			return fail(ctx+".id", NotUnique)
		}
		idx := model.PlaceIndex(len(v.resolved.Places))
		v.placeIndex[h.ID] = idx
		v.resolved.Places = append(v.resolved.Places, h)
		v.resolved.HubIdx = append(v.resolved.HubIdx, idx)
	}
	return nil
}

// --- jobs (+tasks +rewards) ---------------------------------------------

func (v *validator) validateJobs() error {
	if v.placeIndex == nil {
		panic(&ConfigurationError{Phase: "jobs", Expected: "hubs"})
	}
	v.jobOfPlace = make(map[model.PlaceIndex]model.JobIndex, len(v.raw.Jobs))
	v.resolved.Jobs = make([]model.ResolvedJob, 0, len(v.raw.Jobs))

	var earliestWorkerStart time.Time
	var haveEarliest bool
	for _, w := range v.raw.Workers {
		if w.EarliestStart != nil && (!haveEarliest || w.EarliestStart.Before(earliestWorkerStart)) {
			earliestWorkerStart, haveEarliest = *w.EarliestStart, true
		}
	}

	for i, j := range v.raw.Jobs {
		ctx := fmt.Sprintf("jobs[%d]", i)
		if j.ID == "" {
			return fail(ctx+".id", MissingOrEmpty)
		}
		if _, dup := v.placeIndex[j.ID]; dup {
			return fail(ctx+".id", NotUnique)
		}
		if j.WindowOpen.Before(v.resolved.TZero) {
			return fail(ctx+".window", Invalid)
		}
		if j.WindowClose.Before(j.WindowOpen) {
			return fail(ctx+".window", Invalid)
		}
		if len(j.Tasks) == 0 {
			return fail(ctx+".tasks", Empty)
		}

		optional := j.Optional
		if haveEarliest && j.WindowClose.Before(earliestWorkerStart) {
			if !optional {
				v.logger.Warn("job window closes before any worker can start; marking optional",
					"job", j.ID, "windowClose", j.WindowClose, "earliestWorkerStart", earliestWorkerStart)
			}
			optional = true
		}

		placeIdx := model.PlaceIndex(len(v.resolved.Places))
		v.placeIndex[j.ID] = placeIdx
		v.resolved.Places = append(v.resolved.Places, j.Place)

		tasks := make([]model.ResolvedTask, len(j.Tasks))
		for ti, t := range j.Tasks {
			tctx := fmt.Sprintf("%s.tasks[%d]", ctx, ti)
			if t.ToolID == "" {
				return fail(tctx+".toolId", MissingOrEmpty)
			}
			toolIdx, ok := v.toolIndex[t.ToolID]
			if !ok {
				return fail(tctx+".toolId", Unrecognized)
			}
			rewards := make([]model.ResolvedReward, len(t.Rewards))
			for ri, rw := range t.Rewards {
				rctx := fmt.Sprintf("%s.rewards[%d]", tctx, ri)
				metricIdx, ok := v.metricIndex[rw.MetricID]
				if !ok {
					return fail(rctx+".metricId", Unrecognized)
				}
				if rw.Amount < 0 {
					return fail(rctx+".amount", LessThanZero)
				}
				rewards[ri] = model.ResolvedReward{MetricIdx: metricIdx, Amount: rw.Amount}
			}
			tasks[ti] = model.ResolvedTask{
				ID:       t.ID,
				Order:    ti + 1, // 1-based index within the job's task list
				ToolIdx:  toolIdx,
				Optional: t.Optional,
				Rewards:  rewards,
			}
		}

		jobIdx := model.JobIndex(len(v.resolved.Jobs))
		v.jobOfPlace[placeIdx] = jobIdx
		v.resolved.Jobs = append(v.resolved.Jobs, model.ResolvedJob{
			PlaceIdx:    placeIdx,
			WindowOpen:  j.WindowOpen,
			WindowClose: j.WindowClose,
			Optional:    optional,
			Tasks:       tasks,
		})
	}
	return nil
}

// --- workers (+capabilities +reward modifiers) --------------------------

func (v *validator) validateWorkers() error {
	if v.jobOfPlace == nil {
		panic(&ConfigurationError{Phase: "workers", Expected: "jobs"})
	}
	v.workerIndex = make(map[model.WorkerID]model.WorkerIndex, len(v.raw.Workers))
	v.resolved.Workers = make([]model.ResolvedWorker, 0, len(v.raw.Workers))

	for i, w := range v.raw.Workers {
		ctx := fmt.Sprintf("workers[%d]", i)
		if w.ID == "" {
			return fail(ctx+".id", MissingOrEmpty)
		}
		if _, dup := v.workerIndex[w.ID]; dup {
			return fail(ctx+".id", NotUnique)
		}
		startIdx, ok := v.placeIndex[w.StartHub]
		if !ok {
			return fail(ctx+".startHub", Unrecognized)
		}
		endIdx, ok := v.placeIndex[w.EndHub]
		if !ok {
			return fail(ctx+".endHub", Unrecognized)
		}
		if w.EarliestStart != nil && w.LatestEnd != nil && w.LatestEnd.Before(*w.EarliestStart) {
			return fail(ctx+".latestEnd", Invalid)
		}
		if w.TravelSpeedFactor <= 0 {
			return fail(ctx+".travelSpeedFactor", LessThanOrEqualToZero)
		}

		caps := make(map[model.ToolIndex]model.ResolvedCapability, len(w.Capabilities))
		seenTool := make(map[model.ToolIndex]bool, len(w.Capabilities))
		for ci, c := range w.Capabilities {
			cctx := fmt.Sprintf("%s.capabilities[%d]", ctx, ci)
			toolIdx, ok := v.toolIndex[c.ToolID]
			if !ok {
				return fail(cctx+".toolId", Unrecognized)
			}
			if seenTool[toolIdx] {
				return fail(cctx+".toolId", NotUnique)
			}
			seenTool[toolIdx] = true
			if c.WorkTimeOverrideSeconds != nil && *c.WorkTimeOverrideSeconds < 0 {
				return fail(cctx+".workTime", LessThanZero)
			}
			if c.WorkTimeFactor <= 0 {
				return fail(cctx+".workTimeFactor", LessThanOrEqualToZero)
			}
			if c.CompletionChanceOverride != nil && (*c.CompletionChanceOverride < 0 || *c.CompletionChanceOverride > 1) {
				return fail(cctx+".completionChance", Invalid)
			}
			rf := make(map[model.MetricIndex]float64, len(c.RewardFactors))
			for mid, f := range c.RewardFactors {
				metricIdx, ok := v.metricIndex[mid]
				if !ok {
					return fail(cctx+".rewardFactors", Unrecognized)
				}
				if f < 0 {
					return fail(cctx+".rewardFactors", LessThanZero)
				}
				rf[metricIdx] = f
			}
			caps[toolIdx] = model.ResolvedCapability{
				ToolIdx:                  toolIdx,
				WorkTimeOverrideSeconds:  c.WorkTimeOverrideSeconds,
				WorkTimeFactor:           c.WorkTimeFactor,
				CompletionChanceOverride: c.CompletionChanceOverride,
				RewardFactors:            rf,
			}
		}

		mods := make([]model.ResolvedRewardModifier, len(w.RewardModifiers))
		for mi, rm := range w.RewardModifiers {
			mctx := fmt.Sprintf("%s.rewardModifiers[%d]", ctx, mi)
			metricIdx, ok := v.metricIndex[rm.MetricID]
			if !ok {
				return fail(mctx+".metricId", Unrecognized)
			}
			if rm.ToolID != nil && rm.PlaceID != nil {
				return failReason(mctx, "must not set both toolId and placeId")
			}
			if (rm.Factor == nil) == (rm.Amount == nil) {
				return failReason(mctx, "must set exactly one of factor or amount")
			}
			rrm := model.ResolvedRewardModifier{MetricIdx: metricIdx, Factor: rm.Factor, Amount: rm.Amount}
			if rm.ToolID != nil {
				toolIdx, ok := v.toolIndex[*rm.ToolID]
				if !ok {
					return fail(mctx+".toolId", Unrecognized)
				}
				rrm.ToolIdx = &toolIdx
			}
			if rm.PlaceID != nil {
				placeIdx, ok := v.placeIndex[*rm.PlaceID]
				if !ok {
					return fail(mctx+".placeId", Unrecognized)
				}
				rrm.PlaceIdx = &placeIdx
			}
			mods[mi] = rrm
		}

		v.workerIndex[w.ID] = model.WorkerIndex(len(v.resolved.Workers))
		v.resolved.Workers = append(v.resolved.Workers, model.ResolvedWorker{
			ID:                w.ID,
			StartHubIdx:       startIdx,
			EndHubIdx:         endIdx,
			EarliestStart:     w.EarliestStart,
			LatestEnd:         w.LatestEnd,
			TravelSpeedFactor: w.TravelSpeedFactor,
			Capabilities:      caps,
			RewardModifiers:   mods,
		})
	}
	return nil
}

// --- guarantees ----------------------------------------------------------

func (v *validator) validateGuarantees() error {
	if v.workerIndex == nil {
		panic(&ConfigurationError{Phase: "guarantees", Expected: "workers"})
	}
	mustVisitOwner := make(map[model.PlaceIndex]model.WorkerIndex, len(v.raw.Guarantees))
	v.resolved.GuaranteesByPlace = make(map[model.PlaceIndex][]model.ResolvedGuarantee, len(v.raw.Guarantees))

	for i, g := range v.raw.Guarantees {
		ctx := fmt.Sprintf("guarantees[%d]", i)
		workerIdx, ok := v.workerIndex[g.WorkerID]
		if !ok {
			return fail(ctx+".workerId", Unrecognized)
		}
		placeIdx, ok := v.placeIndex[g.PlaceID]
		if !ok {
			return fail(ctx+".placeId", Unrecognized)
		}
		if g.MustVisit {
			if owner, taken := mustVisitOwner[placeIdx]; taken && owner != workerIdx {
				return fail(ctx+".placeId", NotUnique)
			}
			mustVisitOwner[placeIdx] = workerIdx
		}
		rg := model.ResolvedGuarantee{WorkerIdx: workerIdx, PlaceIdx: placeIdx, MustVisit: g.MustVisit}
		v.resolved.GuaranteesByPlace[placeIdx] = append(v.resolved.GuaranteesByPlace[placeIdx], rg)
	}
	return nil
}
