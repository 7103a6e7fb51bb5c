// Package routingsolver defines the RoutingModel contract (spec §4.9): the
// vehicle-routing problem instance the solver consumes, and the Assignment it
// produces. Concrete solvers live in subpackages (routingsolver/localsolver is
// the default).
package routingsolver

import (
	"context"
	"errors"

	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
	"github.com/katalvlaran/fleetsolver/precedence"
	"github.com/katalvlaran/fleetsolver/vehicle"
)

// Sentinel errors a Solver may return. ConfigurationError here is distinct
// from validate.ConfigurationError: it signals a Model built out of phase
// order, a programming bug rather than a malformed input problem.
var (
	ErrNoViableWorker    = errors.New("routingsolver: no viable worker for a required node")
	ErrConfigurationError = errors.New("routingsolver: model built out of phase order")
	ErrSolverTimeout      = errors.New("routingsolver: timed out before finding a feasible solution")
	ErrSolverInfeasible   = errors.New("routingsolver: no feasible solution exists")
	ErrNotImplemented     = errors.New("routingsolver: requested behavior not implemented")
)

// Eligibility records, per node, which vehicles may service it (spec §4.9):
// the vehicles with positive-completion-chance capability, or just the
// must-visit guarantee's worker when one exists, minus any must-not-visit
// guarantee.
type Eligibility struct {
	// Vehicles[node] lists the indices (into Model.Vehicles) allowed to visit node.
	Vehicles map[int][]int
}

// Model is the fully assembled routing-problem instance a Solver consumes.
type Model struct {
	Resolved    *model.Resolved
	Graph       *nodegraph.Graph
	Vehicles    []*vehicle.Vehicle
	Precedence  *precedence.Matrix
	Eligibility Eligibility

	// DisjunctionPenalty[node] is the cost of leaving an optional node unvisited.
	DisjunctionPenalty map[int]int64
}

// Visit is one stop on a vehicle's route.
type Visit struct {
	VehicleIdx    int
	NodeID        int
	ArrivalSecond int64
}

// Assignment is a Solver's output: one route per vehicle (a vehicle that
// visits nothing has a hub-to-hub or empty route), plus the nodes left
// unvisited.
type Assignment struct {
	Routes       [][]Visit // Routes[v] is vehicle v's ordered visit list, hub-to-hub
	SkippedNodes []int
	TotalCost    int64
}

// Solver is the contract every concrete routing engine implements.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Assignment, error)
}
