// Package ingest decodes the wire JSON document into a model.Problem (spec
// §6.1). Scalar fields decode straight through encoding/json; the worker
// capability and reward-modifier sections — whose shape varies per worker and
// carries optional fields — decode through go-viper/mapstructure/v2 from a
// generic map, the same "lenient dynamic decode" pattern hashicorp/nomad uses
// for its loosely-typed job-spec sections.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/units"
)

type wireDocument struct {
	TZero              *time.Time        `json:"tZero,omitempty"`
	TimeoutSeconds     int               `json:"timeoutSeconds"`
	DefaultTravelSpeed float64           `json:"defaultTravelSpeed"`
	DistanceUnit       string            `json:"distanceUnit"`
	TimeUnit           string            `json:"timeUnit"`
	MaxIdleTime        float64           `json:"maxIdleTime"`
	Engine             string            `json:"engine"`

	Hubs       []wireHub       `json:"hubs"`
	Jobs       []wireJob       `json:"jobs"`
	Workers    []map[string]any `json:"workers"`
	Tools      []wireTool      `json:"tools"`
	Metrics    []wireMetric    `json:"metrics"`
	Guarantees []wireGuarantee `json:"guarantees"`
}

type wireHub struct {
	ID string   `json:"id"`
	X  *float64 `json:"x,omitempty"`
	Y  *float64 `json:"y,omitempty"`
}

type wireTool struct {
	ID                      string  `json:"id"`
	DefaultWorkTimeSeconds  float64 `json:"defaultWorkTimeSeconds"`
	DefaultCompletionChance float64 `json:"defaultCompletionChance"`
}

type wireMetric struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Mode   string  `json:"mode"`
	Weight float64 `json:"weight"`
}

type wireReward struct {
	MetricID string  `json:"metricId"`
	Amount   float64 `json:"amount"`
}

type wireTask struct {
	ID       string       `json:"id"`
	ToolID   string       `json:"toolId"`
	Optional bool         `json:"optional"`
	Rewards  []wireReward `json:"rewards"`
}

type wireJob struct {
	ID          string     `json:"id"`
	X           *float64   `json:"x,omitempty"`
	Y           *float64   `json:"y,omitempty"`
	WindowOpen  time.Time  `json:"windowOpen"`
	WindowClose time.Time  `json:"windowClose"`
	Optional    bool       `json:"optional"`
	Tasks       []wireTask `json:"tasks"`
}

type wireGuarantee struct {
	WorkerID  string `json:"workerId"`
	PlaceID   string `json:"placeId"`
	MustVisit bool   `json:"mustVisit"`
}

// Decode reads and parses a wire document from r.
func Decode(r io.Reader) (*model.Problem, error) {
	var doc wireDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("ingest: decode json: %w", err)
	}
	return toProblem(&doc)
}

func toProblem(doc *wireDocument) (*model.Problem, error) {
	distanceUnit, err := units.ParseDistanceUnit(doc.DistanceUnit)
	if err != nil {
		return nil, err
	}
	timeUnit, err := units.ParseTimeUnit(doc.TimeUnit)
	if err != nil {
		return nil, err
	}
	engine, err := parseEngine(doc.Engine)
	if err != nil {
		return nil, err
	}

	p := &model.Problem{
		TZero:              doc.TZero,
		TimeoutSeconds:     doc.TimeoutSeconds,
		DefaultTravelSpeed: doc.DefaultTravelSpeed,
		DistanceUnit:       distanceUnit,
		TimeUnit:           timeUnit,
		MaxIdleTime:        doc.MaxIdleTime,
		Engine:             engine,
	}

	for _, h := range doc.Hubs {
		p.Hubs = append(p.Hubs, model.Place{ID: model.PlaceID(h.ID), X: h.X, Y: h.Y})
	}
	for _, t := range doc.Tools {
		p.Tools = append(p.Tools, model.Tool{
			ID:                      model.ToolID(t.ID),
			DefaultWorkTimeSeconds:  t.DefaultWorkTimeSeconds,
			DefaultCompletionChance: t.DefaultCompletionChance,
		})
	}
	for _, m := range doc.Metrics {
		mt, err := parseMetricType(m.Type)
		if err != nil {
			return nil, err
		}
		mode, err := parseMetricMode(m.Mode)
		if err != nil {
			return nil, err
		}
		p.Metrics = append(p.Metrics, model.Metric{ID: model.MetricID(m.ID), Type: mt, Mode: mode, Weight: m.Weight})
	}
	for _, j := range doc.Jobs {
		job := model.Job{
			Place:       model.Place{ID: model.PlaceID(j.ID), X: j.X, Y: j.Y},
			WindowOpen:  j.WindowOpen,
			WindowClose: j.WindowClose,
			Optional:    j.Optional,
		}
		for _, t := range j.Tasks {
			task := model.Task{ID: t.ID, ToolID: model.ToolID(t.ToolID), Optional: t.Optional}
			for _, rw := range t.Rewards {
				task.Rewards = append(task.Rewards, model.Reward{MetricID: model.MetricID(rw.MetricID), Amount: rw.Amount})
			}
			job.Tasks = append(job.Tasks, task)
		}
		p.Jobs = append(p.Jobs, job)
	}
	for _, g := range doc.Guarantees {
		p.Guarantees = append(p.Guarantees, model.Guarantee{
			WorkerID:  model.WorkerID(g.WorkerID),
			PlaceID:   model.PlaceID(g.PlaceID),
			MustVisit: g.MustVisit,
		})
	}

	for _, raw := range doc.Workers {
		w, err := decodeWorker(raw)
		if err != nil {
			return nil, err
		}
		p.Workers = append(p.Workers, w)
	}

	return p, nil
}

// decodeWorker maps a worker's generic JSON object into model.Worker via
// mapstructure, which tolerates the optional pointer fields
// (earliestStart/latestEnd/overrides) and the time.Time/metric-keyed-map
// shapes encoding/json alone would need bespoke unmarshalers for.
func decodeWorker(raw map[string]any) (model.Worker, error) {
	type wireCapability struct {
		ToolID                   string             `mapstructure:"toolId"`
		WorkTimeOverrideSeconds  *float64           `mapstructure:"workTimeOverrideSeconds"`
		WorkTimeFactor           float64            `mapstructure:"workTimeFactor"`
		CompletionChanceOverride *float64           `mapstructure:"completionChanceOverride"`
		RewardFactors            map[string]float64 `mapstructure:"rewardFactors"`
	}
	type wireRewardModifier struct {
		MetricID string   `mapstructure:"metricId"`
		ToolID   *string  `mapstructure:"toolId"`
		PlaceID  *string  `mapstructure:"placeId"`
		Factor   *float64 `mapstructure:"factor"`
		Amount   *float64 `mapstructure:"amount"`
	}
	type wireWorker struct {
		ID                string               `mapstructure:"id"`
		StartHub          string               `mapstructure:"startHub"`
		EndHub            string               `mapstructure:"endHub"`
		EarliestStart     *time.Time           `mapstructure:"earliestStart"`
		LatestEnd         *time.Time           `mapstructure:"latestEnd"`
		TravelSpeedFactor float64              `mapstructure:"travelSpeedFactor"`
		Capabilities      []wireCapability     `mapstructure:"capabilities"`
		RewardModifiers   []wireRewardModifier `mapstructure:"rewardModifiers"`
	}

	var ww wireWorker
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &ww,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return model.Worker{}, fmt.Errorf("ingest: build worker decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return model.Worker{}, fmt.Errorf("ingest: decode worker: %w", err)
	}

	w := model.Worker{
		ID:                model.WorkerID(ww.ID),
		StartHub:          model.PlaceID(ww.StartHub),
		EndHub:            model.PlaceID(ww.EndHub),
		EarliestStart:     ww.EarliestStart,
		LatestEnd:         ww.LatestEnd,
		TravelSpeedFactor: ww.TravelSpeedFactor,
	}
	for _, c := range ww.Capabilities {
		capability := model.Capability{
			WorkerID:                 w.ID,
			ToolID:                   model.ToolID(c.ToolID),
			WorkTimeOverrideSeconds:  c.WorkTimeOverrideSeconds,
			WorkTimeFactor:           c.WorkTimeFactor,
			CompletionChanceOverride: c.CompletionChanceOverride,
		}
		if len(c.RewardFactors) > 0 {
			capability.RewardFactors = make(map[model.MetricID]float64, len(c.RewardFactors))
			for k, v := range c.RewardFactors {
				capability.RewardFactors[model.MetricID(k)] = v
			}
		}
		w.Capabilities = append(w.Capabilities, capability)
	}
	for _, rm := range ww.RewardModifiers {
		out := model.RewardModifier{MetricID: model.MetricID(rm.MetricID), Factor: rm.Factor, Amount: rm.Amount}
		if rm.ToolID != nil {
			id := model.ToolID(*rm.ToolID)
			out.ToolID = &id
		}
		if rm.PlaceID != nil {
			id := model.PlaceID(*rm.PlaceID)
			out.PlaceID = &id
		}
		w.RewardModifiers = append(w.RewardModifiers, out)
	}

	return w, nil
}

func parseMetricType(s string) (model.MetricType, error) {
	switch s {
	case "distance":
		return model.MetricDistance, nil
	case "travelTime":
		return model.MetricTravelTime, nil
	case "workTime":
		return model.MetricWorkTime, nil
	case "custom":
		return model.MetricCustom, nil
	default:
		return 0, fmt.Errorf("ingest: unrecognized metric type %q", s)
	}
}

func parseMetricMode(s string) (model.MetricMode, error) {
	switch s {
	case "minimize":
		return model.Minimize, nil
	case "maximize":
		return model.Maximize, nil
	default:
		return 0, fmt.Errorf("ingest: unrecognized metric mode %q", s)
	}
}

func parseEngine(s string) (model.GeometryEngineKind, error) {
	switch s {
	case "", "simple":
		return model.Simple, nil
	case "osrm":
		return model.Osrm, nil
	default:
		return 0, fmt.Errorf("ingest: unrecognized engine %q", s)
	}
}
