package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fleetsolver/engine"
	"github.com/katalvlaran/fleetsolver/internal/problemgen"
)

func TestSolveSmallGeneratedProblem(t *testing.T) {
	p := problemgen.Generate(
		problemgen.WithHubs(1),
		problemgen.WithJobs(3),
		problemgen.WithWorkers(2),
		problemgen.WithSeed(7),
	)

	result, err := engine.Solve(context.Background(), p, engine.Options{Seed: 7})
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result.SkippedJobs, "every job in this fixture is required")
}

func TestSolveIsDeterministicForFixedSeed(t *testing.T) {
	p := problemgen.Generate(problemgen.WithJobs(4), problemgen.WithWorkers(2), problemgen.WithSeed(3))

	r1, err := engine.Solve(context.Background(), p, engine.Options{Seed: 42})
	require.NoError(t, err)
	r2, err := engine.Solve(context.Background(), p, engine.Options{Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, r1.TotalCost, r2.TotalCost)
	assert.Equal(t, r1.TotalMetrics, r2.TotalMetrics)
}
