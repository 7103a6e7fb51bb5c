// Package logging constructs the hclog.Logger every package in this module
// takes as an explicit constructor argument (spec §6.3) — never a package
// global, matching the teacher's own logging discipline.
package logging

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// New builds a logger named "fleetsolver" at level, falling back to the
// LOG_LEVEL environment variable and then Info when level is empty.
func New(level string) hclog.Logger {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  "fleetsolver",
		Level: hclog.LevelFromString(level),
	})
}
