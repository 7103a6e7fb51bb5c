// Package localsolver implements the default routingsolver.Solver: a
// cheapest-insertion construction heuristic followed by a bounded 2-opt local
// search pass, in the spirit of the teacher's tsp package's approximate
// solvers (nearest-insertion construction, then 2-opt/3-opt refinement) —
// generalized here from a single tour over one vehicle to many routes with
// time windows, precedence, and per-node vehicle eligibility.
//
// It is a heuristic, not an exact solver: spec §4.9 calls for "a" default
// implementation behind the routingsolver.Solver interface, not a specific
// algorithm, and exact VRPTW is NP-hard at any scale worth building for.
package localsolver

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/katalvlaran/fleetsolver/routingsolver"
)

// Solver is the default routingsolver.Solver.
type Solver struct {
	logger hclog.Logger
}

// New constructs a Solver.
func New(logger hclog.Logger) *Solver {
	return &Solver{logger: logger}
}

var _ routingsolver.Solver = (*Solver)(nil)

// Solve builds one route per vehicle, visiting every required node exactly
// once and every beneficial optional node at most once.
func (s *Solver) Solve(ctx context.Context, m *routingsolver.Model) (*routingsolver.Assignment, error) {
	b := newBuilder(m)

	if err := b.assignRequired(ctx); err != nil {
		return nil, err
	}
	b.assignOptional(ctx)
	b.twoOpt(ctx)

	return b.assignment(), nil
}
