// Package constraints implements VelocityConstraints: the translation of
// moving-obstacle trajectories into per-cell forbidden time windows and
// per-edge timing constraints, and the EAT (earliest-arrival-time) query
// the single-agent search uses at every expansion.
package constraints

import (
	"math"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
	"github.com/elektrokombinacija/aa-sipp-go/internal/intervals"
)

// VelocityConstraints wraps a SafeIntervalStore and additionally tracks
// edge-timing constraints derived from registered moving entities
// (dynamic obstacles and already-planned agents).
type VelocityConstraints struct {
	Store *intervals.Store

	size    float64 // current agent's radius
	speed   float64 // current agent's translational speed
	omega   float64 // current agent's rotational speed
	tweight float64 // rotation time multiplier

	// sections is the raw set of moving-entity trajectory legs registered
	// so far, each tagged with the entity's radius. findIntervals sweeps
	// these directly to compute edge-timing clearance, since the instant a
	// candidate traversal departs is only known at query time.
	sections []registeredSection

	// startReservations are not-yet-planned agents' start-area occupancy
	// windows, tagged by owner. Unlike sections, these are never merged
	// into Store: they're overlaid at query time in intervalsAt, excluding
	// whichever agent is currentOwner, so a reservation never blocks its
	// own owner's search without needing to be un-added once that agent's
	// turn arrives (see DESIGN.md).
	startReservations []startReservation

	currentOwner    core.AgentID
	hasCurrentOwner bool
}

type registeredSection struct {
	sec    core.Section
	radius float64
}

type startReservation struct {
	owner    core.AgentID
	duration float64
	cells    []core.Cell
}

func (r startReservation) covers(i, j int) bool {
	for _, c := range r.cells {
		if c.I == i && c.J == j {
			return true
		}
	}
	return false
}

// New creates a VelocityConstraints over a W x H grid.
func New(width, height int) *VelocityConstraints {
	return &VelocityConstraints{Store: intervals.NewStore(width, height)}
}

// SetParams sets the current agent's parameters, used to translate other
// entities' trajectories into forbidden windows for this agent's own size.
func (vc *VelocityConstraints) SetParams(size, speed, omega, tweight float64) {
	vc.size = size
	vc.speed = speed
	vc.omega = omega
	vc.tweight = tweight
}

// SetCurrentAgent marks id as the agent about to search, so that agent's
// own start-area reservation, if any, is excluded from its own
// safe-interval queries (see startReservations above).
func (vc *VelocityConstraints) SetCurrentAgent(id core.AgentID) {
	vc.currentOwner = id
	vc.hasCurrentOwner = true
}

// ResetSafeIntervals restores every cell to the fully-open interval and
// clears registered sections and start reservations; called once per
// outer-loop iteration.
func (vc *VelocityConstraints) ResetSafeIntervals(width, height int) {
	vc.Store.ResetSafeIntervals(width, height)
	vc.sections = nil
	vc.startReservations = nil
	vc.hasCurrentOwner = false
}

// UpdateCellSafeIntervals forces materialisation of a single cell.
func (vc *VelocityConstraints) UpdateCellSafeIntervals(i, j int) {
	vc.Store.UpdateCellSafeIntervals(i, j)
}

// GetSafeInterval returns the k-th safe interval at (i,j), after applying
// the current agent's start-reservation overlay.
func (vc *VelocityConstraints) GetSafeInterval(i, j, k int) (core.Interval, bool) {
	ivs := vc.intervalsAt(i, j)
	if k < 0 || k >= len(ivs) {
		return core.Interval{}, false
	}
	return ivs[k], true
}

// NumIntervals returns the number of safe intervals at (i,j), after
// applying the current agent's start-reservation overlay.
func (vc *VelocityConstraints) NumIntervals(i, j int) int {
	return len(vc.intervalsAt(i, j))
}

// intervalsAt returns cell (i,j)'s materialised safe intervals from Store,
// further narrowed by any other agent's still-active start-area
// reservation covering this cell. The current agent's own reservation, if
// any, is skipped, so an agent is never blocked from its own start cell by
// a window it registered against itself before its own turn.
func (vc *VelocityConstraints) intervalsAt(i, j int) []core.Interval {
	ivs := vc.Store.Intervals(i, j)
	if len(vc.startReservations) == 0 {
		return ivs
	}
	applied := false
	for _, r := range vc.startReservations {
		if vc.hasCurrentOwner && r.owner == vc.currentOwner {
			continue
		}
		if !r.covers(i, j) {
			continue
		}
		ivs = intervals.Subtract(ivs, core.Interval{Lo: 0, Hi: r.duration})
		applied = true
	}
	if applied {
		ivs = intervals.Coalesce(ivs)
	}
	return ivs
}

// AddConstraints registers a moving entity's sections (a dynamic obstacle
// or a just-planned agent's path) against the safe-interval store and the
// edge-timing set, for an entity of the given radius.
func (vc *VelocityConstraints) AddConstraints(sections []core.Section, radius float64) {
	r := vc.size + radius
	for _, sec := range sections {
		vc.sections = append(vc.sections, registeredSection{sec: sec, radius: radius})
		vc.forbidCellsNearSection(sec, r)
	}
}

// forbidCellsNearSection finds every cell ever within distance r of the
// moving disc during this section and adds the corresponding forbidden
// time window to the safe-interval store.
func (vc *VelocityConstraints) forbidCellsNearSection(sec core.Section, r float64) {
	iLo := int(math.Floor(math.Min(sec.IStart, sec.IEnd) - r))
	iHi := int(math.Ceil(math.Max(sec.IStart, sec.IEnd) + r))
	jLo := int(math.Floor(math.Min(sec.JStart, sec.JEnd) - r))
	jHi := int(math.Ceil(math.Max(sec.JStart, sec.JEnd) + r))

	for i := iLo; i <= iHi; i++ {
		for j := jLo; j <= jHi; j++ {
			lo, hi, ok := closestApproachWindow(sec, core.Point{I: float64(i), J: float64(j)}, r)
			if ok {
				vc.Store.AddForbidden(i, j, lo, hi)
			}
		}
	}
}

// closestApproachWindow returns the sub-interval of [sec.TStart,sec.TEnd]
// during which the moving point sec.PositionAt(t) is strictly within r of
// the fixed point p, by bracketing the boundary crossings of dist(t)-r.
// The obstacle moves at constant speed along a straight segment, so dist(t)
// is a single convex arc over the section and this has at most one
// contiguous window. Two discs exactly touching (dist == r) do not collide,
// matching the auditor's dist+eps < r1+r2 predicate, so the boundary is
// shrunk by Epsilon.
func closestApproachWindow(sec core.Section, p core.Point, r float64) (lo, hi float64, ok bool) {
	const samples = 64
	rr := r - core.Epsilon
	dur := sec.TEnd - sec.TStart
	if dur <= 0 {
		if core.Euclidean(sec.From(), p) < rr {
			return sec.TStart, sec.TStart, true
		}
		return 0, 0, false
	}
	if math.IsInf(dur, 1) {
		// An unbounded section only occurs for an agent resting at its goal
		// forever; the obstacle's position is constant, so a single check
		// at TStart stands in for the (otherwise NaN-producing) sweep below.
		if core.Euclidean(sec.From(), p) < rr {
			return sec.TStart, core.Infinity, true
		}
		return 0, 0, false
	}

	dist := func(t float64) float64 { return core.Euclidean(sec.PositionAt(t), p) - rr }

	prevT := sec.TStart
	prevD := dist(prevT)
	var windowLo, windowHi float64
	found := false

	refine := func(a, b, da, db float64) float64 {
		for k := 0; k < 40; k++ {
			mid := (a + b) / 2
			dm := dist(mid)
			if (da < 0) == (dm < 0) {
				a, da = mid, dm
			} else {
				b, db = mid, dm
			}
		}
		return (a + b) / 2
	}

	for step := 1; step <= samples; step++ {
		t := sec.TStart + dur*float64(step)/float64(samples)
		d := dist(t)
		if d < 0 && !found {
			if prevD < 0 {
				windowLo = prevT
			} else {
				windowLo = refine(prevT, t, prevD, d)
			}
			found = true
		}
		if d >= 0 && found && windowHi == 0 && prevD < 0 {
			windowHi = refine(prevT, t, prevD, d)
			return windowLo, windowHi, true
		}
		prevT, prevD = t, d
	}
	if found {
		return windowLo, sec.TEnd, true
	}
	return 0, 0, false
}

// AddStartConstraint marks owner's start area (the disc of cells returned
// by LineOfSight.GetCells) occupied for [0,duration], so other agents
// avoid camping there before owner gets to plan. Unlike AddConstraints,
// this is tracked as a startReservation rather than merged into Store, so
// SetCurrentAgent(owner) can later exempt owner from its own reservation.
// Calling this again for an owner that already has a reservation is a no-op.
func (vc *VelocityConstraints) AddStartConstraint(owner core.AgentID, duration float64, cells []core.Cell) {
	for _, r := range vc.startReservations {
		if r.owner == owner {
			return
		}
	}
	cellsCopy := append([]core.Cell(nil), cells...)
	vc.startReservations = append(vc.startReservations, startReservation{owner: owner, duration: duration, cells: cellsCopy})
}

// ClearStartConstraint permanently drops owner's start-area reservation.
// The scheduler calls this once owner has actually been planned: owner's
// real registered path (AddConstraints) is the precise footprint from then
// on, so the coarse whole-start-area placeholder must stop applying to
// every other agent's searches.
func (vc *VelocityConstraints) ClearStartConstraint(owner core.AgentID) {
	kept := vc.startReservations[:0]
	for _, r := range vc.startReservations {
		if r.owner != owner {
			kept = append(kept, r)
		}
	}
	vc.startReservations = kept
}

// FindIntervals returns, for each safe interval at (newI,newJ), the
// earliest arrival time (EAT) at which the agent can depart parent (at
// parentG, within parentInterval) and legally be at
// (newI,newJ) within that interval, honouring registered edge-timing
// constraints along the straight segment parent->new. Intervals with no
// feasible arrival are omitted.
func (vc *VelocityConstraints) FindIntervals(parent core.Point, parentCell core.Cell, parentG float64, parentInterval core.Interval, newI, newJ int) (eats []float64, ivs []core.Interval) {
	segLen := core.Euclidean(parent, core.Point{I: float64(newI), J: float64(newJ)})
	segTime := segLen / vc.speed

	for _, iv := range vc.intervalsAt(newI, newJ) {
		start, ok := vc.earliestDeparture(parentG, parentInterval, segTime, iv)
		if !ok {
			continue
		}
		arrival, ok := vc.sweepEdge(parentCell, core.Cell{I: newI, J: newJ}, start, segLen, iv, parentInterval.Hi)
		if !ok {
			continue
		}
		eats = append(eats, arrival)
		ivs = append(ivs, iv)
	}
	return eats, ivs
}

// earliestDeparture computes the earliest time the agent may depart the
// parent state so that, ignoring edge-timing constraints, it arrives
// within the target interval. Waiting at the parent is only feasible while
// the parent's own safe interval allows it.
func (vc *VelocityConstraints) earliestDeparture(parentG float64, parentInterval core.Interval, segTime float64, target core.Interval) (float64, bool) {
	depart := parentG
	earliestArrival := depart + segTime
	if earliestArrival <= target.Lo+core.Epsilon {
		depart = target.Lo - segTime
		if depart > parentInterval.Hi+core.Epsilon {
			return 0, false
		}
		if depart < parentG {
			depart = parentG
		}
		return depart, true
	}
	if earliestArrival > target.Hi+core.Epsilon {
		return 0, false
	}
	return depart, true
}

// sweepEdge advances the candidate departure time past any forbidden
// edge-timing window that intersects the parent->new segment, returning
// the resulting arrival time (EAT). It fails if the departure would have
// to exceed the parent's own safe interval.
func (vc *VelocityConstraints) sweepEdge(from, to core.Cell, depart, segLen float64, target core.Interval, parentHi float64) (float64, bool) {
	fromPt := core.Point{I: float64(from.I), J: float64(from.J)}
	toPt := core.Point{I: float64(to.I), J: float64(to.J)}
	const maxIters = 64
	for iter := 0; iter < maxIters; iter++ {
		arrival := depart + segLen/vc.speed
		if arrival > target.Hi+core.Epsilon {
			return 0, false
		}
		blockedUntil, blocked := vc.firstBlockingWindow(fromPt, toPt, depart, arrival)
		if !blocked {
			if arrival < target.Lo-core.Epsilon {
				// Shouldn't happen given earliestDeparture, but guard anyway.
				depart = target.Lo - segLen/vc.speed
				continue
			}
			return arrival, true
		}
		// Epsilon keeps depart strictly advancing even when the sole
		// blocked sample sits exactly at the current departure time.
		depart = blockedUntil + core.Epsilon
		if depart > parentHi+core.Epsilon {
			return 0, false
		}
	}
	return 0, false
}

// firstBlockingWindow reports the latest sampled time in [depart,arrival]
// at which a registered moving entity comes strictly within (self radius +
// entity radius) of the agent sweeping from->to, if any. Exact touching is
// not a conflict, consistent with closestApproachWindow and the auditor.
func (vc *VelocityConstraints) firstBlockingWindow(from, to core.Point, depart, arrival float64) (until float64, blocked bool) {
	const samples = 24
	for _, rs := range vc.sections {
		sec := rs.sec
		lo := math.Max(depart, sec.TStart)
		hi := math.Min(arrival, sec.TEnd)
		if hi <= lo {
			continue
		}
		r := vc.size + rs.radius
		dur := arrival - depart
		if dur <= 0 {
			continue
		}
		for step := 0; step <= samples; step++ {
			t := lo + (hi-lo)*float64(step)/float64(samples)
			frac := (t - depart) / dur
			pos := core.Point{I: from.I + frac*(to.I-from.I), J: from.J + frac*(to.J-from.J)}
			if core.Euclidean(sec.PositionAt(t), pos) < r-core.Epsilon {
				// Obstacle within r of the agent's position at time t.
				if t > until || !blocked {
					until = t
					blocked = true
				}
			}
		}
	}
	if blocked {
		return until, true
	}
	return 0, false
}
