// Package engine is the top-level facade (spec §2): it wires the Validator,
// NodeExpander, GeometryEngine, VehicleMatrixBuilder, PrecedenceMatrixBuilder,
// RoutingModel and SolutionExtractor into the single Solve entry point the CLI
// (and any embedder) calls, mirroring the teacher's top-level algorithms
// facade package's one-call-does-everything shape.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/katalvlaran/fleetsolver/extract"
	"github.com/katalvlaran/fleetsolver/geometry"
	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
	"github.com/katalvlaran/fleetsolver/precedence"
	"github.com/katalvlaran/fleetsolver/routingsolver"
	"github.com/katalvlaran/fleetsolver/routingsolver/localsolver"
	"github.com/katalvlaran/fleetsolver/validate"
	"github.com/katalvlaran/fleetsolver/vehicle"
)

// Options configures a single Solve call.
type Options struct {
	// Seed drives every deterministic RNG stream this run touches (spec §5,
	// §8 invariant 11). Zero is a valid seed, not "unset" — vehicle.BuildAll
	// mixes it with each worker's index into that worker's own stream seed.
	Seed int64

	// Timeout bounds the routing solver's search; zero means ctx alone governs.
	Timeout time.Duration

	// Solver overrides the default routingsolver.Solver implementation. Nil
	// selects localsolver.New.
	Solver routingsolver.Solver

	Logger hclog.Logger
}

// Solve runs the full pipeline against p and returns the extracted result.
func Solve(ctx context.Context, p *model.Problem, opts Options) (*extract.Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	resolved, err := validate.Validate(p, logger)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	ng := nodegraph.Expand(resolved)

	geo, err := geometry.Build(resolved, ng)
	if err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}

	vehicles, err := vehicle.BuildAll(resolved, ng, geo, opts.Seed, logger)
	if err != nil {
		return nil, fmt.Errorf("vehicle: %w", err)
	}

	prec := precedence.Build(ng)

	rm := routingsolver.NewModel(resolved, ng, vehicles, prec)

	solver := opts.Solver
	if solver == nil {
		solver = localsolver.New(logger)
	}

	solveCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	assignment, err := solver.Solve(solveCtx, rm)
	if err != nil {
		// Per spec §7, SolverTimeout/SolverInfeasible are not process failures:
		// they surface as an empty solution with every job skipped plus a
		// warning log. Every other solver error (NoViableWorker chief among
		// them) remains fatal to the solve.
		if errors.Is(err, routingsolver.ErrSolverTimeout) || errors.Is(err, routingsolver.ErrSolverInfeasible) {
			logger.Warn("solver returned no assignment; reporting all jobs skipped", "error", err)
			return extract.BuildResult(resolved, ng, vehicles, emptyAssignment(ng, len(vehicles))), nil
		}
		return nil, fmt.Errorf("solve: %w", err)
	}

	return extract.BuildResult(resolved, ng, vehicles, assignment), nil
}

// emptyAssignment stands in for a solver that returned no assignment: no
// vehicle visits anything, and every job's head node is reported skipped
// (spec §4.10: "If the solver returns no assignment, emit an empty itinerary
// and all jobs as skipped").
func emptyAssignment(ng *nodegraph.Graph, numVehicles int) *routingsolver.Assignment {
	a := &routingsolver.Assignment{Routes: make([][]routingsolver.Visit, numVehicles)}
	a.SkippedNodes = append(a.SkippedNodes, ng.JobHeadNode...)
	return a
}
