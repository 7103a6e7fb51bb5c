package vehicle

import "fmt"

// IntMatrix is a row-major, bounds-checked N×N matrix of int64, mirroring the
// teacher's matrix.Dense storage discipline (flat backing slice, O(1) At/Set)
// for the one place a float64 Matrix cannot be reused: the fixed-point scaled
// cost matrix and the integer transit-time matrix feed straight into the routing
// solver's transit callbacks, which must return int64 (spec §3, §4.7).
type IntMatrix struct {
	n    int
	data []int64
}

// ErrIndexOutOfBounds mirrors matrix.ErrIndexOutOfBounds for the int64 family.
var ErrIndexOutOfBounds = fmt.Errorf("vehicle: index out of bounds")

// NewIntMatrix allocates an n×n matrix initialized to zero.
func NewIntMatrix(n int) *IntMatrix {
	return &IntMatrix{n: n, data: make([]int64, n*n)}
}

// N returns the matrix dimension.
func (m *IntMatrix) N() int { return m.n }

// At returns the value at (row, col), panicking on an out-of-range index —
// every caller in this package derives row/col from a Graph it built itself,
// so an out-of-range index here is always a programming error.
func (m *IntMatrix) At(row, col int) int64 {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		panic(ErrIndexOutOfBounds)
	}
	return m.data[row*m.n+col]
}

// Set assigns v at (row, col).
func (m *IntMatrix) Set(row, col int, v int64) {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		panic(ErrIndexOutOfBounds)
	}
	m.data[row*m.n+col] = v
}

// Add accumulates v into (row, col).
func (m *IntMatrix) Add(row, col int, v int64) {
	m.Set(row, col, m.At(row, col)+v)
}
