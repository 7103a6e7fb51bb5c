// Package model defines the raw problem entities decoded from the wire document,
// and the resolved (handle-indexed) form produced by the validate package.
//
// Raw types carry string identifiers exactly as they appear on the wire; resolved
// types replace string cross-references with arena indices so that downstream
// packages (nodegraph, geometry, vehicle, routingsolver, extract) never re-parse
// or re-look-up an id by string once validation has run.
package model

import "time"

// ToolID, MetricID, PlaceID, JobID, WorkerID are opaque wire identifiers.
// They are unique per kind within a Problem (spec data-model invariant).
type (
	ToolID   string
	MetricID string
	PlaceID  string
	JobID    string
	WorkerID string
)

// MetricType classifies what a Metric measures.
type MetricType int

const (
	MetricDistance MetricType = iota
	MetricTravelTime
	MetricWorkTime
	MetricCustom
)

func (t MetricType) String() string {
	switch t {
	case MetricDistance:
		return "Distance"
	case MetricTravelTime:
		return "TravelTime"
	case MetricWorkTime:
		return "WorkTime"
	case MetricCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// MetricMode selects whether a Metric's value should be minimized or maximized.
type MetricMode int

const (
	Minimize MetricMode = iota
	Maximize
)

// Tool is an immutable, load-time entity describing a task-execution capability.
type Tool struct {
	ID                      ToolID
	DefaultWorkTimeSeconds  float64
	DefaultCompletionChance float64
}

// Metric is an immutable cost/reward dimension contributing to the fused cost matrix.
type Metric struct {
	ID     MetricID
	Type   MetricType
	Mode   MetricMode
	Weight float64
}

// Place is a located (or unlocated) point of interest. Hubs and Jobs both embed Place.
type Place struct {
	ID PlaceID
	X  *float64
	Y  *float64
}

// HasLocation reports whether both coordinates are present.
func (p Place) HasLocation() bool { return p.X != nil && p.Y != nil }

// Reward binds a Metric to an amount earned when a Task completes.
type Reward struct {
	MetricID MetricID
	Amount   float64
}

// Task is one unit of work performed at a Job, using a single Tool.
type Task struct {
	ID       string
	Order    int // 1-based index within the job's task list, assigned by the validator
	ToolID   ToolID
	Optional bool
	Rewards  []Reward
}

// Job is a Place with an arrival window and an ordered list of tasks.
type Job struct {
	Place
	WindowOpen  time.Time
	WindowClose time.Time
	Optional    bool
	Tasks       []Task
}

// RewardModifier adjusts how a worker earns a metric, keyed by metric plus
// optionally a tool xor a place (never both). Exactly one of Factor/Amount is set.
type RewardModifier struct {
	MetricID MetricID
	ToolID   *ToolID
	PlaceID  *PlaceID
	Factor   *float64
	Amount   *float64
}

// Capability describes how well a Worker performs a given Tool.
type Capability struct {
	WorkerID                  WorkerID
	ToolID                    ToolID
	WorkTimeOverrideSeconds   *float64
	WorkTimeFactor            float64
	CompletionChanceOverride  *float64
	RewardFactors             map[MetricID]float64
}

// Worker is an immutable entity describing a vehicle's driver.
type Worker struct {
	ID                WorkerID
	StartHub          PlaceID
	EndHub            PlaceID
	EarliestStart     *time.Time
	LatestEnd         *time.Time
	TravelSpeedFactor float64
	Capabilities      []Capability
	RewardModifiers   []RewardModifier
}

// Guarantee overrides normal vehicle-eligibility computation for a (worker, place) pair.
type Guarantee struct {
	WorkerID  WorkerID
	PlaceID   PlaceID
	MustVisit bool // true: worker must visit place; false: worker must not visit place
}

// DistanceUnit and TimeUnit select the wire unit system; see the units package
// for their conversion factors.
type DistanceUnit int

const (
	Foot DistanceUnit = iota
	Metre
	Ell
	Fathom
	Peninkulma
	Rast
)

type TimeUnit int

const (
	Second TimeUnit = iota
	Minute
	Hour
)

// GeometryEngineKind selects how GeometryEngine computes distance/time matrices.
type GeometryEngineKind int

const (
	Simple GeometryEngineKind = iota
	Osrm
)

// Problem is the fully decoded, not-yet-validated input document.
type Problem struct {
	TZero              *time.Time
	TimeoutSeconds      int
	DefaultTravelSpeed  float64
	DistanceUnit        DistanceUnit
	TimeUnit            TimeUnit
	MaxIdleTime         float64
	Engine              GeometryEngineKind

	Hubs       []Place
	Jobs       []Job
	Workers    []Worker
	Tools      []Tool
	Metrics    []Metric
	Guarantees []Guarantee
}
