package search

import (
	"math"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

// openList is the row-partitioned open set: one slice per grid row, each
// kept sorted by F ascending with ties broken by G descending, so a row's
// head is always that row's best candidate.
type openList struct {
	rows map[int][]*Node
	size int
}

func newOpenList() *openList {
	return &openList{rows: make(map[int][]*Node)}
}

// add inserts n into its row, first applying the domination rule against any
// existing state at the same (cell, interval.Lo): whichever state reaches
// the other's cell with the lower effective g (after the rotation-time
// penalty needed to face the other's heading) survives: a dominated n is
// discarded without being inserted, a dominated existing state is removed
// from the row before n is inserted. The penalty uses the plain
// heading difference, not the wrapped one rotation nodes pay.
func (ol *openList) add(n *Node, tweight, omega float64) {
	row := ol.rows[n.Cell.I]

	for idx, e := range row {
		if e.Cell.J != n.Cell.J || math.Abs(e.Interval.Lo-n.Interval.Lo) >= core.Epsilon {
			continue
		}
		rotCost := tweight * math.Abs(n.Heading-e.Heading) / (omega * 180)
		if e.G-(n.G+rotCost) < core.Epsilon {
			return // e already dominates n
		}
		if n.G-(e.G+rotCost) < core.Epsilon {
			row = append(row[:idx], row[idx+1:]...)
			ol.size--
		}
		break // at most one state occupies a given (cell, interval.Lo)
	}

	pos := len(row)
	for idx, e := range row {
		if math.Abs(e.F-n.F) < core.Epsilon {
			if n.G > e.G {
				pos = idx
				break
			}
			continue
		}
		if e.F > n.F {
			pos = idx
			break
		}
	}
	row = append(row, nil)
	copy(row[pos+1:], row[pos:])
	row[pos] = n
	ol.rows[n.Cell.I] = row
	ol.size++
}

// popMin removes and returns the open state with the lowest F, breaking ties
// by preferring the larger G (a deeper, more-progressed state), scanning
// only each row's head.
func (ol *openList) popMin() *Node {
	var bestRow int
	var best *Node
	for i, row := range ol.rows {
		if len(row) == 0 {
			continue
		}
		cand := row[0]
		if best == nil || cand.F < best.F-core.Epsilon ||
			(math.Abs(cand.F-best.F) < core.Epsilon && cand.G >= best.G) {
			best = cand
			bestRow = i
		}
	}
	if best == nil {
		return nil
	}
	row := ol.rows[bestRow]
	ol.rows[bestRow] = row[1:]
	ol.size--
	return best
}

func (ol *openList) empty() bool {
	return ol.size == 0
}

// closedSet maps i*width+j to every state popped for that cell, one per
// safe interval. Parent pointers use the actual popped *Node directly
// rather than re-looking the cell up: a Go pointer is already a stable
// reference to its Node regardless of map contents.
type closedSet struct {
	width int
	seen  map[int][]*Node
	count int
}

func newClosedSet(width int) *closedSet {
	return &closedSet{width: width, seen: make(map[int][]*Node)}
}

func (cs *closedSet) key(i, j int) int { return i*cs.width + j }

// insert records n as the closed entry for its (cell, interval) pair.
func (cs *closedSet) insert(n *Node) {
	k := cs.key(n.Cell.I, n.Cell.J)
	cs.seen[k] = append(cs.seen[k], n)
	cs.count++
}

// contains reports whether a state with this cell and interval lower bound
// was already expanded. Successor generation skips such states; without
// this, two open cells can regenerate each other's states forever on an
// instance with no path to the goal.
func (cs *closedSet) contains(i, j int, intervalLo float64) bool {
	for _, n := range cs.seen[cs.key(i, j)] {
		if math.Abs(n.Interval.Lo-intervalLo) < core.Epsilon {
			return true
		}
	}
	return false
}

func (cs *closedSet) size() int { return cs.count }
