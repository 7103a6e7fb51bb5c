// Package problemgen synthesizes model.Problem fixtures for tests and
// benchmarks, using the teacher builder package's functional-options plus
// seeded-RNG shape (one Option per knob, a deterministic *rand.Rand driving
// every random choice) adapted from graph generation to problem generation.
package problemgen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/katalvlaran/fleetsolver/model"
)

// Config holds every knob an Option may set.
type Config struct {
	Hubs         int
	Jobs         int
	TasksPerJob  int
	Workers      int
	Seed         int64
	WindowLength time.Duration
}

// Option mutates a Config.
type Option func(*Config)

// WithHubs sets the hub count.
func WithHubs(n int) Option { return func(c *Config) { c.Hubs = n } }

// WithJobs sets the job count.
func WithJobs(n int) Option { return func(c *Config) { c.Jobs = n } }

// WithTasksPerJob sets how many tasks each job carries.
func WithTasksPerJob(n int) Option { return func(c *Config) { c.TasksPerJob = n } }

// WithWorkers sets the worker count.
func WithWorkers(n int) Option { return func(c *Config) { c.Workers = n } }

// WithSeed sets the RNG seed driving every random choice.
func WithSeed(seed int64) Option { return func(c *Config) { c.Seed = seed } }

func defaultConfig() Config {
	return Config{Hubs: 1, Jobs: 5, TasksPerJob: 1, Workers: 2, Seed: 1, WindowLength: 8 * time.Hour}
}

// Generate builds a structurally valid random Problem with a single tool and
// a single Distance metric, suitable for exercising the full pipeline.
func Generate(opts ...Option) *model.Problem {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	t0 := time.Unix(0, 0).UTC()
	p := &model.Problem{
		DefaultTravelSpeed: 10,
		DistanceUnit:       model.Metre,
		TimeUnit:           model.Second,
		Tools:              []model.Tool{{ID: "tool-1", DefaultWorkTimeSeconds: 60, DefaultCompletionChance: 0.9}},
		Metrics:            []model.Metric{{ID: "distance", Type: model.MetricDistance, Mode: model.Minimize, Weight: 1}},
	}

	for i := 0; i < cfg.Hubs; i++ {
		x, y := randCoord(rng), randCoord(rng)
		p.Hubs = append(p.Hubs, model.Place{ID: model.PlaceID(fmt.Sprintf("hub-%d", i)), X: &x, Y: &y})
	}

	for i := 0; i < cfg.Jobs; i++ {
		x, y := randCoord(rng), randCoord(rng)
		job := model.Job{
			Place:       model.Place{ID: model.PlaceID(fmt.Sprintf("job-%d", i)), X: &x, Y: &y},
			WindowOpen:  t0,
			WindowClose: t0.Add(cfg.WindowLength),
		}
		for ti := 0; ti < cfg.TasksPerJob; ti++ {
			job.Tasks = append(job.Tasks, model.Task{
				ID:     fmt.Sprintf("job-%d-task-%d", i, ti),
				ToolID: "tool-1",
				Rewards: []model.Reward{{MetricID: "distance", Amount: 1}},
			})
		}
		p.Jobs = append(p.Jobs, job)
	}

	for i := 0; i < cfg.Workers; i++ {
		hub := p.Hubs[i%len(p.Hubs)].ID
		p.Workers = append(p.Workers, model.Worker{
			ID:                model.WorkerID(fmt.Sprintf("worker-%d", i)),
			StartHub:          hub,
			EndHub:             hub,
			TravelSpeedFactor: 1,
			Capabilities: []model.Capability{{
				ToolID:         "tool-1",
				WorkTimeFactor: 1,
			}},
		})
	}

	return p
}

func randCoord(rng *rand.Rand) float64 { return rng.Float64() * 100 }
