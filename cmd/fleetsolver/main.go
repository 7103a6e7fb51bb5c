// Command fleetsolver is the CLI entry point (spec §6.2): it reads a problem
// document, runs the engine, and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/fleetsolver/engine"
	"github.com/katalvlaran/fleetsolver/ingest"
	"github.com/katalvlaran/fleetsolver/internal/logging"
	"github.com/katalvlaran/fleetsolver/routingsolver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	var (
		pretty   bool
		timeout  time.Duration
		logLevel string
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "fleetsolver <path-to-json>",
		Short: "Solve a multi-vehicle routing and scheduling problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			p, err := ingest.Decode(f)
			if err != nil {
				return err
			}

			result, err := engine.Solve(context.Background(), p, engine.Options{
				Seed:    seed,
				Timeout: timeout,
				Logger:  logging.New(logLevel),
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(result)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "pretty-print the result JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "solver time budget, e.g. 30s (0 = no limit)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "hclog level (trace/debug/info/warn/error)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "deterministic RNG seed")

	return cmd
}

// exitCodeFor maps solver sentinel errors to distinct process exit codes
// (spec §6.2), so a caller scripting this binary can distinguish "infeasible
// problem" from "bad input" from "internal bug" without parsing stderr.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, routingsolver.ErrNoViableWorker):
		return 2
	case errors.Is(err, routingsolver.ErrSolverInfeasible):
		return 3
	case errors.Is(err, routingsolver.ErrSolverTimeout):
		return 4
	case errors.Is(err, routingsolver.ErrConfigurationError):
		return 5
	default:
		return 1
	}
}
