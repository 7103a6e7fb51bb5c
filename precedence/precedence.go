// Package precedence implements the PrecedenceMatrixBuilder (spec §4.8): a
// 0/1 matrix over the node graph marking which transits the routing solver is
// forbidden from taking, independent of any vehicle.
//
// A transit a→b is invalid when b is a job's head node and a sits at the same
// place, or when b is an optional-task node and a is not a node of the same
// place whose first task order is strictly lower (so an optional-task node is
// never entered from a hub or another job). Transits into a hub, or into any
// node with no tasks, are always valid; the routing model's own
// window/capacity logic accepts or rejects those.
package precedence

import "github.com/katalvlaran/fleetsolver/nodegraph"

// Valid is 1, Invalid is 0 — matching spec §4.8's "0/1 matrix" phrasing.
const (
	Invalid = 0
	Valid   = 1
)

// Matrix is an N×N 0/1 table indexed exactly like the node graph.
type Matrix struct {
	n    int
	data []byte
}

func (m *Matrix) at(a, b int) byte  { return m.data[a*m.n+b] }
func (m *Matrix) set(a, b int, v byte) { m.data[a*m.n+b] = v }

// N returns the matrix dimension.
func (m *Matrix) N() int { return m.n }

// IsValid reports whether transit a→b may be taken.
func (m *Matrix) IsValid(a, b int) bool { return m.at(a, b) == Valid }

// Build constructs the precedence matrix for ng.
//
// Validity is decided entirely by the destination node b (spec §4.8):
//   - b is a hub, or otherwise has no tasks: always valid.
//   - b is a job's head node (carries the required tasks): valid only if
//     a's place differs from b's place — a head node is never re-entered
//     from its own job's place.
//   - b is an optional-task node: valid only if a shares b's place and a's
//     first task order is strictly less than b's first task order, so a
//     job's optional tasks can only be approached in sequence from a node
//     at the same place (the head node qualifies only when its first
//     required task comes before them).
func Build(ng *nodegraph.Graph) *Matrix {
	n := len(ng.Nodes)
	m := &Matrix{n: n, data: make([]byte, n*n)}

	isHead := make(map[int]bool, len(ng.JobHeadNode))
	for _, h := range ng.JobHeadNode {
		isHead[h] = true
	}

	for a := 0; a < n; a++ {
		na := ng.Nodes[a]
		for b := 0; b < n; b++ {
			if a == b {
				m.set(a, b, Valid)
				continue
			}
			nb := ng.Nodes[b]

			var valid bool
			switch {
			case len(nb.Tasks) == 0:
				valid = true
			case isHead[b]:
				valid = na.PlaceIdx != nb.PlaceIdx
			default:
				valid = len(na.Tasks) > 0 && na.PlaceIdx == nb.PlaceIdx && na.Tasks[0].Order < nb.Tasks[0].Order
			}

			if valid {
				m.set(a, b, Valid)
			} else {
				m.set(a, b, Invalid)
			}
		}
	}

	return m
}
