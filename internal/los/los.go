// Package los implements geometric visibility and traversability checks for
// a thick circular agent moving over a grid.
package los

import (
	"math"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

// LineOfSight answers traversability and visibility queries for an agent of
// a given radius. Queries are not re-entrant across radii: call SetSize
// before querying, and don't share one LineOfSight between agents planning
// concurrently with different radii.
type LineOfSight struct {
	radius float64
}

// New creates a LineOfSight with radius 0; call SetSize before using it.
func New() *LineOfSight {
	return &LineOfSight{}
}

// SetSize sets the agent radius for subsequent queries.
func (l *LineOfSight) SetSize(r float64) {
	l.radius = r
}

// GetCells returns the set of cells covered by a disc of the current radius
// centred at (i,j): every cell whose centre lies within that radius.
func (l *LineOfSight) GetCells(i, j int) []core.Cell {
	return cellsWithinRadius(i, j, l.radius)
}

func cellsWithinRadius(ci, cj int, r float64) []core.Cell {
	reach := int(math.Ceil(r))
	cells := make([]core.Cell, 0, (2*reach+1)*(2*reach+1))
	for di := -reach; di <= reach; di++ {
		for dj := -reach; dj <= reach; dj++ {
			if math.Hypot(float64(di), float64(dj)) <= r+core.Epsilon {
				cells = append(cells, core.Cell{I: ci + di, J: cj + dj})
			}
		}
	}
	return cells
}

// CheckTraversability reports whether a disc of the current radius centred
// at (i,j) fits entirely within free cells of m.
func (l *LineOfSight) CheckTraversability(i, j int, m *core.Map) bool {
	for _, c := range cellsWithinRadius(i, j, l.radius) {
		if !m.Free(c.I, c.J) {
			return false
		}
	}
	return true
}

// CheckLine reports whether a disc of the current radius passes
// CheckTraversability at every cell of Supercover's walk along the straight
// segment (i1,j1)->(i2,j2). Only those cells are checked: a cell the swept
// disc clips between two of them (at a diagonal step of the walk) is not.
func (l *LineOfSight) CheckLine(i1, j1, i2, j2 int, m *core.Map) bool {
	for _, c := range Supercover(i1, j1, i2, j2) {
		if !l.CheckTraversability(c.I, c.J, m) {
			return false
		}
	}
	return true
}

// Supercover rasterises the straight segment between two grid cells with a
// Bresenham walk: one cell per step along the longer axis, including both
// endpoints, stepping diagonally where the shorter coordinate changes. Cells
// the segment crosses at such a diagonal step are not included. Shared by
// CheckLine and by the search package's secondary-path reconstruction.
func Supercover(i1, j1, i2, j2 int) []core.Cell {
	di := i1 - i2
	if di < 0 {
		di = -di
	}
	dj := j1 - j2
	if dj < 0 {
		dj = -dj
	}
	stepI := 1
	if i1 >= i2 {
		stepI = -1
	}
	stepJ := 1
	if j1 >= j2 {
		stepJ = -1
	}

	var line []core.Cell
	i, j := i1, j1
	if di > dj {
		error := 0
		for ; i != i2; i += stepI {
			line = append(line, core.Cell{I: i, J: j})
			error += dj
			if (error << 1) > di {
				j += stepJ
				error -= di
			}
		}
	} else {
		error := 0
		for ; j != j2; j += stepJ {
			line = append(line, core.Cell{I: i, J: j})
			error += di
			if (error << 1) > dj {
				i += stepI
				error -= dj
			}
		}
	}
	line = append(line, core.Cell{I: i2, J: j2})
	return line
}
