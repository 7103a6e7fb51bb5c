package precedence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/fleetsolver/model"
	"github.com/katalvlaran/fleetsolver/nodegraph"
	"github.com/katalvlaran/fleetsolver/precedence"
)

func graphFixture() *nodegraph.Graph {
	return &nodegraph.Graph{
		Nodes: []nodegraph.Node{
			{ID: 0, PlaceIdx: 0},                                                           // hub
			{ID: 1, PlaceIdx: 1, Tasks: []model.ResolvedTask{{Order: 1}, {Order: 2}}},       // job head (required tasks)
			{ID: 2, PlaceIdx: 1, Tasks: []model.ResolvedTask{{Order: 3}}, Skippable: true},  // optional task order 3
			{ID: 3, PlaceIdx: 1, Tasks: []model.ResolvedTask{{Order: 4}}, Skippable: true},  // optional task order 4
		},
		HubNode:     []int{0},
		JobHeadNode: []int{1},
	}
}

func TestBuildHubIntoHeadValid(t *testing.T) {
	m := precedence.Build(graphFixture())
	assert.True(t, m.IsValid(0, 1), "hub -> head node: different place, always valid")
}

func TestBuildHubIntoOptionalInvalid(t *testing.T) {
	m := precedence.Build(graphFixture())
	assert.False(t, m.IsValid(0, 2), "hub -> optional node: different place, invalid")
}

func TestBuildHeadIntoOptionalValidWhenForward(t *testing.T) {
	m := precedence.Build(graphFixture())
	assert.True(t, m.IsValid(1, 2), "head (order 1) -> optional (order 3): same place, forward order")
}

func TestBuildOptionalIntoHeadInvalid(t *testing.T) {
	m := precedence.Build(graphFixture())
	assert.False(t, m.IsValid(2, 1), "optional -> head: same place, entering a head node is never valid")
}

func TestBuildOptionalOrderingEnforced(t *testing.T) {
	m := precedence.Build(graphFixture())
	assert.True(t, m.IsValid(2, 3), "order 3 -> order 4 is forward")
	assert.False(t, m.IsValid(3, 2), "order 4 -> order 3 is backward")
}
