package problemgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fleetsolver/internal/problemgen"
)

func TestGenerateHonorsOptionCounts(t *testing.T) {
	p := problemgen.Generate(
		problemgen.WithHubs(2),
		problemgen.WithJobs(4),
		problemgen.WithTasksPerJob(2),
		problemgen.WithWorkers(3),
		problemgen.WithSeed(9),
	)

	assert.Len(t, p.Hubs, 2)
	assert.Len(t, p.Jobs, 4)
	assert.Len(t, p.Workers, 3)
	for _, j := range p.Jobs {
		assert.Len(t, j.Tasks, 2)
	}
}

func TestGenerateIsDeterministicForSameSeed(t *testing.T) {
	a := problemgen.Generate(problemgen.WithJobs(3), problemgen.WithSeed(5))
	b := problemgen.Generate(problemgen.WithJobs(3), problemgen.WithSeed(5))
	require.Len(t, a.Jobs, len(b.Jobs))
	for i := range a.Jobs {
		assert.Equal(t, *a.Jobs[i].X, *b.Jobs[i].X)
		assert.Equal(t, *a.Jobs[i].Y, *b.Jobs[i].Y)
	}
}
