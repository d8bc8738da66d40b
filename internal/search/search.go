package search

import (
	"math"
	"time"

	"github.com/elektrokombinacija/aa-sipp-go/internal/constraints"
	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
	"github.com/elektrokombinacija/aa-sipp-go/internal/los"
)

var neighborOffsets = [4]core.Cell{{I: -1, J: 0}, {I: 1, J: 0}, {I: 0, J: -1}, {I: 0, J: 1}}

// Search runs AA-SIPP for a single agent against a fixed set of already
// registered constraints.
type Search struct {
	Map   *core.Map
	LOS   *los.LineOfSight
	VC    *constraints.VelocityConstraints
	Agent *core.Agent
	Cfg   core.Config

	// Deadline is the job-wide wall-clock cutoff shared by every search of
	// the planning job; the zero value disables the check.
	Deadline time.Time
}

// New creates a Search for one agent. Run sets VC's size/speed/omega/tweight
// itself via SetParams, from Agent and Cfg.
func New(m *core.Map, l *los.LineOfSight, vc *constraints.VelocityConstraints, agent *core.Agent, cfg core.Config) *Search {
	return &Search{Map: m, LOS: l, VC: vc, Agent: agent, Cfg: cfg}
}

// Run executes the search and returns the agent's PathResult. A successful
// result carries both the waypoint-level PrimaryPath and the rasterised
// SecondaryPath; a failed one carries only an ErrorKind.
func (s *Search) Run() core.PathResult {
	begin := time.Now()
	result := core.PathResult{AgentID: s.Agent.ID}

	s.LOS.SetSize(s.Agent.Radius)
	s.VC.SetParams(s.Agent.Radius, s.Agent.Speed, s.Agent.Omega, s.Cfg.TWeight)
	s.VC.SetCurrentAgent(s.Agent.ID)

	if !s.LOS.CheckTraversability(s.Agent.Start.I, s.Agent.Start.J, s.Map) ||
		!s.LOS.CheckTraversability(s.Agent.Goal.I, s.Agent.Goal.J, s.Map) {
		result.ErrorKind = core.NoPathForAgent
		result.Time = time.Since(begin).Seconds()
		return result
	}

	s.VC.UpdateCellSafeIntervals(s.Agent.Start.I, s.Agent.Start.J)
	startInterval, ok := s.VC.GetSafeInterval(s.Agent.Start.I, s.Agent.Start.J, 0)
	if !ok || startInterval.Lo > core.Epsilon {
		// The start cell itself is occupied at t=0 (by a registered moving
		// entity or an earlier agent's start reservation): no feasible path.
		result.ErrorKind = core.NoPathForAgent
		result.Time = time.Since(begin).Seconds()
		return result
	}

	sentinel := &Node{IsSentinel: true}
	start := &Node{
		Cell:     s.Agent.Start,
		Interval: startInterval,
		Parent:   sentinel,
	}
	start.F = s.Cfg.HWeight * core.EuclideanCells(s.Agent.Start, s.Agent.Goal) / s.Agent.Speed

	open := newOpenList()
	open.add(start, s.Cfg.TWeight, s.Agent.Omega)
	closed := newClosedSet(s.Map.Width)

	var goal *Node
	for !open.empty() {
		if !s.Deadline.IsZero() && time.Now().After(s.Deadline) {
			result.ErrorKind = core.Timeout
			break
		}
		cur := open.popMin()
		closed.insert(cur)

		if cur.Cell == s.Agent.Goal && math.IsInf(cur.Interval.Hi, 1) {
			goal = cur
			break
		}
		s.expand(cur, open, closed)
	}

	result.NodesCreated = open.size + closed.size()
	result.NumberOfSteps = closed.size()
	result.Time = time.Since(begin).Seconds()

	if goal == nil {
		if result.ErrorKind == core.NoErrorKind {
			result.ErrorKind = core.NoPathForAgent
		}
		return result
	}

	result.PathFound = true
	result.Primary = s.makePrimaryPath(goal)
	result.Secondary = makeSecondaryPath(result.Primary)
	result.PathLength = goal.G
	return result
}

// expand generates cur's successors: a direct cardinal move to each free
// neighbour, plus, if any-angle moves are enabled and cur has a real
// grandparent, a reparented move straight from that grandparent. A
// successor whose (cell, interval) was already expanded is dropped.
func (s *Search) expand(cur *Node, open *openList, closed *closedSet) {
	parentPt := core.Point{I: float64(cur.Cell.I), J: float64(cur.Cell.J)}

	for _, off := range neighborOffsets {
		ni, nj := cur.Cell.I+off.I, cur.Cell.J+off.J
		if !s.Map.InBounds(ni, nj) || !s.LOS.CheckTraversability(ni, nj, s.Map) {
			continue
		}
		s.VC.UpdateCellSafeIntervals(ni, nj)

		newCell := core.Cell{I: ni, J: nj}
		heading := core.Heading(cur.Cell, newCell)
		rotDelta := core.HeadingDelta(cur.Heading, heading)
		gRot := cur.G + s.Cfg.TWeight*rotDelta/(s.Agent.Omega*180)
		hval := s.Cfg.HWeight * core.EuclideanCells(newCell, s.Agent.Goal) / s.Agent.Speed

		if gRot <= cur.Interval.Hi+core.Epsilon {
			eats, ivs := s.VC.FindIntervals(parentPt, cur.Cell, gRot, cur.Interval, ni, nj)
			for k := range eats {
				if closed.contains(ni, nj, ivs[k].Lo) {
					continue
				}
				open.add(&Node{Cell: newCell, G: eats[k], F: eats[k] + hval, Interval: ivs[k], Heading: heading, Parent: cur}, s.Cfg.TWeight, s.Agent.Omega)
			}
		}

		if !s.Cfg.AllowAnyAngle || cur.Parent.IsSentinel {
			continue
		}
		gp := cur.Parent
		if !s.LOS.CheckLine(gp.Cell.I, gp.Cell.J, ni, nj, s.Map) {
			continue
		}
		newHeading := core.Heading(gp.Cell, newCell)
		rotDelta2 := core.HeadingDelta(gp.Heading, newHeading)
		gRot2 := gp.G + s.Cfg.TWeight*rotDelta2/(s.Agent.Omega*180)
		if gRot2 > gp.Interval.Hi+core.Epsilon {
			continue
		}
		gpPt := core.Point{I: float64(gp.Cell.I), J: float64(gp.Cell.J)}
		eats2, ivs2 := s.VC.FindIntervals(gpPt, gp.Cell, gRot2, gp.Interval, ni, nj)
		for k := range eats2 {
			if closed.contains(ni, nj, ivs2[k].Lo) {
				continue
			}
			open.add(&Node{Cell: newCell, G: eats2[k], F: eats2[k] + hval, Interval: ivs2[k], Heading: newHeading, Parent: gp}, s.Cfg.TWeight, s.Agent.Omega)
		}
	}
}

// makePrimaryPath walks cur's parent chain back to the sentinel, then
// inserts a synthetic wait-state wherever the gap between two waypoints'
// arrival times exceeds straight-line travel time: the agent waited at the
// earlier cell before departing.
func (s *Search) makePrimaryPath(goal *Node) core.PrimaryPath {
	var chain []*Node
	for n := goal; !n.IsSentinel; n = n.Parent {
		chain = append(chain, n)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	path := make(core.PrimaryPath, 0, len(chain))
	for _, n := range chain {
		wp := core.Waypoint{I: n.Cell.I, J: n.Cell.J, G: n.G, Heading: n.Heading}
		if len(path) > 0 {
			prev := path[len(path)-1]
			dist := core.EuclideanCells(prev.Cell(), wp.Cell())
			expected := prev.G + dist/s.Agent.Speed
			if wp.G-expected > core.Epsilon {
				path = append(path, core.Waypoint{I: prev.I, J: prev.J, G: wp.G - dist/s.Agent.Speed, Heading: prev.Heading})
			}
		}
		path = append(path, wp)
	}
	return path
}

// makeSecondaryPath rasterises every leg of a PrimaryPath with the same
// supercover walk LineOfSight.CheckLine uses, linearly interpolating time
// between each leg's endpoints.
func makeSecondaryPath(primary core.PrimaryPath) core.SecondaryPath {
	if len(primary) == 0 {
		return nil
	}
	out := core.SecondaryPath{{I: primary[0].I, J: primary[0].J, G: primary[0].G}}
	for i := 1; i < len(primary); i++ {
		a, b := primary[i-1], primary[i]
		cells := los.Supercover(a.I, a.J, b.I, b.J)
		n := len(cells)
		for k := 1; k < n; k++ {
			frac := float64(k) / float64(n-1)
			out = append(out, core.TimedCell{I: cells[k].I, J: cells[k].J, G: a.G + frac*(b.G-a.G)})
		}
	}
	return out
}
