package model

import "time"

// Indices into a Resolved problem's arenas. Using distinct integer types instead
// of bare int keeps a ToolIndex from being passed where a JobIndex is expected.
type (
	ToolIndex   int
	MetricIndex int
	PlaceIndex  int
	JobIndex    int
	WorkerIndex int
)

// ResolvedTask is a Task with its tool reference resolved to an index and its
// reward metric references resolved as well.
type ResolvedTask struct {
	ID       string
	Order    int
	ToolIdx  ToolIndex
	Optional bool
	Rewards  []ResolvedReward
}

// ResolvedReward binds a resolved metric index to an amount.
type ResolvedReward struct {
	MetricIdx MetricIndex
	Amount    float64
}

// ResolvedJob is a Job whose Place occupies PlaceIdx in the shared place arena.
type ResolvedJob struct {
	PlaceIdx    PlaceIndex
	WindowOpen  time.Time
	WindowClose time.Time
	Optional    bool
	Tasks       []ResolvedTask
}

// ResolvedRewardModifier mirrors RewardModifier with resolved indices.
type ResolvedRewardModifier struct {
	MetricIdx MetricIndex
	ToolIdx   *ToolIndex
	PlaceIdx  *PlaceIndex
	Factor    *float64
	Amount    *float64
}

// ResolvedCapability mirrors Capability with resolved indices.
type ResolvedCapability struct {
	ToolIdx                  ToolIndex
	WorkTimeOverrideSeconds  *float64
	WorkTimeFactor           float64
	CompletionChanceOverride *float64
	RewardFactors            map[MetricIndex]float64
}

// ResolvedWorker mirrors Worker with resolved indices; Capabilities is keyed by
// ToolIndex for O(1) lookup from WorkSimulator.
type ResolvedWorker struct {
	ID                WorkerID
	StartHubIdx       PlaceIndex
	EndHubIdx         PlaceIndex
	EarliestStart     *time.Time
	LatestEnd         *time.Time
	TravelSpeedFactor float64
	Capabilities      map[ToolIndex]ResolvedCapability
	RewardModifiers   []ResolvedRewardModifier
}

// ResolvedGuarantee mirrors Guarantee with resolved indices.
type ResolvedGuarantee struct {
	WorkerIdx WorkerIndex
	PlaceIdx  PlaceIndex
	MustVisit bool
}

// Resolved is the validated, handle-indexed Problem. All downstream packages
// (nodegraph, geometry, worksim, vehicle, precedence, routingsolver, extract)
// operate exclusively on Resolved, never on Problem.
type Resolved struct {
	TZero              time.Time
	TimeoutSeconds      int
	DefaultTravelSpeed  float64
	DistanceUnit        DistanceUnit
	TimeUnit            TimeUnit
	MaxIdleTime         float64
	Engine              GeometryEngineKind

	Places  []Place  // hubs followed by jobs' Place, indexed by PlaceIndex
	HubIdx  []PlaceIndex
	Tools   []Tool
	Metrics []Metric
	Jobs    []ResolvedJob
	Workers []ResolvedWorker

	// GuaranteesByPlace indexes guarantees for O(1) eligibility lookups in routingsolver.
	GuaranteesByPlace map[PlaceIndex][]ResolvedGuarantee

	// jobOfPlace maps a job's head PlaceIndex back to its JobIndex.
	jobOfPlace map[PlaceIndex]JobIndex
}

// JobIndexForPlace returns the JobIndex whose head node lives at idx, and true
// if idx belongs to a job (as opposed to a hub).
func (r *Resolved) JobIndexForPlace(idx PlaceIndex) (JobIndex, bool) {
	ji, ok := r.jobOfPlace[idx]
	return ji, ok
}

// SetJobOfPlace is called once by the validator while building the arena.
func (r *Resolved) SetJobOfPlace(m map[PlaceIndex]JobIndex) { r.jobOfPlace = m }

// ToolByID returns the index of the tool with the given id, or -1.
func (r *Resolved) ToolByID(id ToolID) ToolIndex {
	for i, t := range r.Tools {
		if t.ID == id {
			return ToolIndex(i)
		}
	}
	return -1
}

// MetricByID returns the index of the metric with the given id, or -1.
func (r *Resolved) MetricByID(id MetricID) MetricIndex {
	for i, m := range r.Metrics {
		if m.ID == id {
			return MetricIndex(i)
		}
	}
	return -1
}
