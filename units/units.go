// Package units holds the static distance/time conversion tables used by the
// GeometryEngine and SolutionExtractor to convert between wire units and the
// internal base units (meters, seconds). Ground rule (spec §6): these tables
// never change at runtime and carry no behavior beyond table lookup.
package units

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/fleetsolver/model"
)

// ErrUnrecognizedUnit is returned by Parse* when the wire string matches no
// known unit (case-insensitively).
var ErrUnrecognizedUnit = fmt.Errorf("units: unrecognized unit")

// metersPerUnit gives the conversion factor to meters for each DistanceUnit.
var metersPerUnit = map[model.DistanceUnit]float64{
	model.Foot:       0.3048,
	model.Metre:      1,
	model.Ell:        1.143,
	model.Fathom:     1.8288,
	model.Peninkulma: 6000,
	model.Rast:       10000,
}

// secondsPerUnit gives the conversion factor to seconds for each TimeUnit.
var secondsPerUnit = map[model.TimeUnit]float64{
	model.Second: 1,
	model.Minute: 60,
	model.Hour:   3600,
}

// MetersPerUnit returns the distance unit's conversion factor to meters.
func MetersPerUnit(u model.DistanceUnit) float64 { return metersPerUnit[u] }

// SecondsPerUnit returns the time unit's conversion factor to seconds.
func SecondsPerUnit(u model.TimeUnit) float64 { return secondsPerUnit[u] }

var distanceUnitNames = map[string]model.DistanceUnit{
	"foot":       model.Foot,
	"metre":      model.Metre,
	"meter":      model.Metre,
	"ell":        model.Ell,
	"fathom":     model.Fathom,
	"peninkulma": model.Peninkulma,
	"rast":       model.Rast,
}

var timeUnitNames = map[string]model.TimeUnit{
	"second": model.Second,
	"minute": model.Minute,
	"hour":   model.Hour,
}

// ParseDistanceUnit resolves a case-insensitive wire string to a DistanceUnit.
func ParseDistanceUnit(s string) (model.DistanceUnit, error) {
	u, ok := distanceUnitNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedUnit, s)
	}
	return u, nil
}

// ParseTimeUnit resolves a case-insensitive wire string to a TimeUnit.
func ParseTimeUnit(s string) (model.TimeUnit, error) {
	u, ok := timeUnitNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedUnit, s)
	}
	return u, nil
}

// ToMeters converts a value expressed in u to meters.
func ToMeters(v float64, u model.DistanceUnit) float64 { return v * metersPerUnit[u] }

// FromMeters converts a value expressed in meters to u.
func FromMeters(v float64, u model.DistanceUnit) float64 { return v / metersPerUnit[u] }

// ToSeconds converts a value expressed in u to seconds.
func ToSeconds(v float64, u model.TimeUnit) float64 { return v * secondsPerUnit[u] }

// FromSeconds converts a value expressed in seconds to u.
func FromSeconds(v float64, u model.TimeUnit) float64 { return v / secondsPerUnit[u] }
