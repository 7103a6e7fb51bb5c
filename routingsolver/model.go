package routingsolver

import (
	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
	"github.com/katalvlaran/fleetsolver/precedence"
	"github.com/katalvlaran/fleetsolver/vehicle"
)

// NewModel assembles a Model from the outputs of the upstream build phases.
func NewModel(r *model.Resolved, ng *nodegraph.Graph, vehicles []*vehicle.Vehicle, prec *precedence.Matrix) *Model {
	return &Model{
		Resolved:           r,
		Graph:              ng,
		Vehicles:           vehicles,
		Precedence:         prec,
		Eligibility:        BuildEligibility(r, ng),
		DisjunctionPenalty: BuildDisjunctionPenalties(ng),
	}
}
