// Package intervals implements SafeIntervalStore: the per-cell ordered list
// of collision-free time intervals the planner searches over.
package intervals

import (
	"sort"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

type cellState struct {
	safe    []core.Interval
	pending []core.Interval
	touched bool
}

// Store is a per-cell safe-interval cache, lazily materialised.
type Store struct {
	width, height int
	cells         map[int]*cellState
}

// NewStore creates a store over a W x H grid; every cell starts untouched
// and materialises to [0,+Inf) on first query.
func NewStore(width, height int) *Store {
	return &Store{
		width:  width,
		height: height,
		cells:  make(map[int]*cellState),
	}
}

func (s *Store) key(i, j int) int {
	return i*s.width + j
}

func (s *Store) cell(i, j int) *cellState {
	k := s.key(i, j)
	c, ok := s.cells[k]
	if !ok {
		c = &cellState{}
		s.cells[k] = c
	}
	return c
}

// AddForbidden subtracts a closed interval [lo,hi] from cell (i,j)'s safe
// set. The subtraction is deferred until UpdateCellSafeIntervals forces
// materialisation, so cells the search never visits are never merged.
func (s *Store) AddForbidden(i, j int, lo, hi float64) {
	c := s.cell(i, j)
	c.pending = append(c.pending, core.Interval{Lo: lo, Hi: hi})
}

// UpdateCellSafeIntervals forces materialisation of cell (i,j): any pending
// forbidden windows are merged into the safe-interval list.
func (s *Store) UpdateCellSafeIntervals(i, j int) {
	c := s.cell(i, j)
	if !c.touched {
		c.safe = []core.Interval{{Lo: 0, Hi: core.Infinity}}
		c.touched = true
	}
	if len(c.pending) == 0 {
		return
	}
	for _, forbidden := range c.pending {
		c.safe = Subtract(c.safe, forbidden)
	}
	c.safe = Coalesce(c.safe)
	c.pending = c.pending[:0]
}

// GetSafeInterval returns the k-th safe interval at (i,j), materialising
// the cell first. ok is false if k is out of range.
func (s *Store) GetSafeInterval(i, j, k int) (core.Interval, bool) {
	s.UpdateCellSafeIntervals(i, j)
	c := s.cell(i, j)
	if k < 0 || k >= len(c.safe) {
		return core.Interval{}, false
	}
	return c.safe[k], true
}

// NumIntervals returns the number of safe intervals at (i,j), materialising
// the cell first.
func (s *Store) NumIntervals(i, j int) int {
	s.UpdateCellSafeIntervals(i, j)
	return len(s.cell(i, j).safe)
}

// Intervals returns a copy of all safe intervals at (i,j), materialising
// the cell first.
func (s *Store) Intervals(i, j int) []core.Interval {
	s.UpdateCellSafeIntervals(i, j)
	c := s.cell(i, j)
	out := make([]core.Interval, len(c.safe))
	copy(out, c.safe)
	return out
}

// ResetSafeIntervals restores every cell to [0,+Inf) and drops all
// materialised and pending state, resizing the grid to W x H.
func (s *Store) ResetSafeIntervals(width, height int) {
	s.width = width
	s.height = height
	s.cells = make(map[int]*cellState)
}

// Subtract removes a forbidden window from a sorted, pairwise-disjoint
// list of safe intervals, splitting an interval the window lies strictly
// inside of, truncating one it overlaps partially, and dropping one it
// fully covers. Exported so constraints.VelocityConstraints can apply the
// same algebra to its start-area reservation overlay.
func Subtract(safe []core.Interval, forbidden core.Interval) []core.Interval {
	result := make([]core.Interval, 0, len(safe)+1)
	for _, iv := range safe {
		if forbidden.Hi <= iv.Lo+core.Epsilon || forbidden.Lo >= iv.Hi-core.Epsilon {
			// No meaningful overlap.
			result = append(result, iv)
			continue
		}
		if forbidden.Lo > iv.Lo+core.Epsilon {
			left := core.Interval{Lo: iv.Lo, Hi: forbidden.Lo}
			if left.Len() >= core.Epsilon {
				result = append(result, left)
			}
		}
		if forbidden.Hi < iv.Hi-core.Epsilon {
			right := core.Interval{Lo: forbidden.Hi, Hi: iv.Hi}
			if right.Len() >= core.Epsilon {
				result = append(result, right)
			}
		}
	}
	return result
}

// Coalesce merges adjacent intervals separated by less than Epsilon and
// drops any that collapsed to a length below Epsilon.
func Coalesce(safe []core.Interval) []core.Interval {
	if len(safe) == 0 {
		return safe
	}
	sort.Slice(safe, func(a, b int) bool { return safe[a].Lo < safe[b].Lo })
	out := make([]core.Interval, 0, len(safe))
	cur := safe[0]
	for _, iv := range safe[1:] {
		if iv.Lo-cur.Hi < core.Epsilon {
			if iv.Hi > cur.Hi {
				cur.Hi = iv.Hi
			}
			continue
		}
		if cur.Len() >= core.Epsilon {
			out = append(out, cur)
		}
		cur = iv
	}
	if cur.Len() >= core.Epsilon {
		out = append(out, cur)
	}
	return out
}
