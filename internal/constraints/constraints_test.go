package constraints

import (
	"math"
	"testing"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

func TestFindIntervalsOnAnOpenCellReturnsImmediateArrival(t *testing.T) {
	vc := New(5, 5)
	vc.SetParams(0.4, 1, 90, 0)

	eats, ivs := vc.FindIntervals(core.Point{I: 0, J: 0}, core.Cell{I: 0, J: 0}, 0, core.Interval{Lo: 0, Hi: core.Infinity}, 0, 1)
	if len(eats) != 1 {
		t.Fatalf("expected 1 reachable interval, got %d", len(eats))
	}
	if math.Abs(eats[0]-1) > core.Epsilon {
		t.Errorf("expected EAT 1 (unit distance at unit speed), got %v", eats[0])
	}
	if !math.IsInf(ivs[0].Hi, 1) {
		t.Errorf("expected the open interval, got %+v", ivs[0])
	}
}

func TestAddConstraintsForbidsCellsNearAStoppedObstacle(t *testing.T) {
	vc := New(5, 5)
	vc.SetParams(0.4, 1, 90, 0)
	vc.AddConstraints([]core.Section{
		{IStart: 2, JStart: 2, IEnd: 2, JEnd: 2, TStart: 0, TEnd: 5},
	}, 0.4)

	safe := vc.Store.Intervals(2, 2)
	if len(safe) != 1 {
		t.Fatalf("expected a single surviving interval, got %+v", safe)
	}
	if safe[0].Lo < 4.9 {
		t.Errorf("expected cell (2,2) blocked through ~5, got %+v", safe[0])
	}
}

func TestFindIntervalsWaitsOutABlockedTargetWindow(t *testing.T) {
	vc := New(5, 5)
	vc.SetParams(0.4, 1, 90, 0)
	vc.Store.AddForbidden(0, 1, 0, 3)

	eats, ivs := vc.FindIntervals(core.Point{I: 0, J: 0}, core.Cell{I: 0, J: 0}, 0, core.Interval{Lo: 0, Hi: core.Infinity}, 0, 1)
	if len(eats) != 1 {
		t.Fatalf("expected 1 reachable interval, got %d", len(eats))
	}
	if eats[0] < 3-core.Epsilon {
		t.Errorf("expected EAT to be pushed to at least 3 (the forbidden window's end), got %v", eats[0])
	}
	if ivs[0].Lo != 3 {
		t.Errorf("expected the arrival interval to start at 3, got %+v", ivs[0])
	}
}

func TestFindIntervalsRejectsATargetUnreachableWithinParentInterval(t *testing.T) {
	vc := New(5, 5)
	vc.SetParams(0.4, 1, 90, 0)
	vc.Store.AddForbidden(0, 1, 0, 100)

	eats, _ := vc.FindIntervals(core.Point{I: 0, J: 0}, core.Cell{I: 0, J: 0}, 0, core.Interval{Lo: 0, Hi: 10}, 0, 1)
	if len(eats) != 0 {
		t.Errorf("expected no reachable interval when the parent interval closes before the target opens, got %v", eats)
	}
}

func TestStartReservationExcludesItsOwnOwnerButBlocksOthers(t *testing.T) {
	vc := New(5, 5)
	vc.SetParams(0.4, 1, 90, 0)
	vc.AddStartConstraint(core.AgentID(1), 5, []core.Cell{{I: 2, J: 2}})

	vc.SetCurrentAgent(1)
	iv, ok := vc.GetSafeInterval(2, 2, 0)
	if !ok || iv.Lo > core.Epsilon {
		t.Errorf("expected owner's own reservation to not block its own cell, got %+v (ok=%v)", iv, ok)
	}

	vc.SetCurrentAgent(2)
	iv, ok = vc.GetSafeInterval(2, 2, 0)
	if !ok || iv.Lo < 5-core.Epsilon {
		t.Errorf("expected another agent to see the cell blocked through ~5, got %+v (ok=%v)", iv, ok)
	}
}

func TestClearStartConstraintDropsTheReservationForEveryone(t *testing.T) {
	vc := New(5, 5)
	vc.SetParams(0.4, 1, 90, 0)
	vc.AddStartConstraint(core.AgentID(1), 5, []core.Cell{{I: 2, J: 2}})
	vc.ClearStartConstraint(core.AgentID(1))

	vc.SetCurrentAgent(2)
	iv, ok := vc.GetSafeInterval(2, 2, 0)
	if !ok || iv.Lo > core.Epsilon {
		t.Errorf("expected a cleared reservation to no longer block any agent, got %+v (ok=%v)", iv, ok)
	}
}

func TestSweepEdgeDetectsAMovingObstacleCrossingTheSegment(t *testing.T) {
	vc := New(5, 5)
	vc.SetParams(0.4, 1, 90, 0)
	// Obstacle sweeps down column 1 from row 0 to row 4 over t=0..4, so it is
	// beside the (0,0)->(0,1) segment when an undelayed departure would use it.
	vc.AddConstraints([]core.Section{
		{IStart: 0, JStart: 1, IEnd: 4, JEnd: 1, TStart: 0, TEnd: 4},
	}, 0.4)

	eats, ivs := vc.FindIntervals(core.Point{I: 0, J: 0}, core.Cell{I: 0, J: 0}, 0, core.Interval{Lo: 0, Hi: core.Infinity}, 0, 1)
	if len(eats) == 0 {
		t.Fatal("expected at least one reachable interval once the crossing obstacle clears")
	}
	if eats[0] <= 1+core.Epsilon {
		t.Errorf("expected the crossing obstacle to delay arrival past the unobstructed 1, got %v", eats[0])
	}
	_ = ivs
}
