package intervals

import (
	"math"
	"testing"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

func assertDisjointAndOrdered(t *testing.T, safe []core.Interval) {
	t.Helper()
	for i := 0; i < len(safe); i++ {
		if safe[i].Hi < safe[i].Lo {
			t.Fatalf("interval %d has Hi < Lo: %+v", i, safe[i])
		}
		if i > 0 && safe[i-1].Hi > safe[i].Lo+core.Epsilon {
			t.Fatalf("intervals %d and %d overlap: %+v %+v", i-1, i, safe[i-1], safe[i])
		}
	}
}

func TestFreshCellIsFullyOpen(t *testing.T) {
	s := NewStore(5, 5)
	iv, ok := s.GetSafeInterval(2, 2, 0)
	if !ok {
		t.Fatal("expected interval 0 to exist")
	}
	if iv.Lo != 0 || !math.IsInf(iv.Hi, 1) {
		t.Errorf("expected [0,+Inf), got %+v", iv)
	}
	if _, ok := s.GetSafeInterval(2, 2, 1); ok {
		t.Error("expected no second interval on a fresh cell")
	}
}

func TestAddForbiddenSplitsInterval(t *testing.T) {
	s := NewStore(5, 5)
	s.AddForbidden(1, 1, 5, 10)
	safe := s.Intervals(1, 1)
	if len(safe) != 2 {
		t.Fatalf("expected 2 intervals after a mid split, got %d: %+v", len(safe), safe)
	}
	assertDisjointAndOrdered(t, safe)
	if safe[0].Lo != 0 || safe[0].Hi != 5 {
		t.Errorf("unexpected first interval: %+v", safe[0])
	}
	if safe[1].Lo != 10 || !math.IsInf(safe[1].Hi, 1) {
		t.Errorf("unexpected second interval: %+v", safe[1])
	}
}

func TestAddForbiddenTruncatesFromStart(t *testing.T) {
	s := NewStore(5, 5)
	s.AddForbidden(0, 0, 0, 3)
	safe := s.Intervals(0, 0)
	if len(safe) != 1 {
		t.Fatalf("expected 1 interval, got %d: %+v", len(safe), safe)
	}
	if safe[0].Lo != 3 {
		t.Errorf("expected remaining interval to start at 3, got %+v", safe[0])
	}
}

func TestAddForbiddenCanFullyCoverAnInterval(t *testing.T) {
	s := NewStore(5, 5)
	s.AddForbidden(0, 0, 2, 4)
	s.AddForbidden(0, 0, 0, 2)
	s.AddForbidden(0, 0, 4, core.Infinity)
	safe := s.Intervals(0, 0)
	if len(safe) != 0 {
		t.Fatalf("expected the cell to be fully forbidden, got %+v", safe)
	}
}

func TestMultipleForbiddenWindowsStayDisjointAndOrdered(t *testing.T) {
	s := NewStore(5, 5)
	s.AddForbidden(3, 3, 10, 12)
	s.AddForbidden(3, 3, 2, 4)
	s.AddForbidden(3, 3, 20, 21)
	safe := s.Intervals(3, 3)
	assertDisjointAndOrdered(t, safe)
	if len(safe) != 4 {
		t.Fatalf("expected 4 surviving intervals, got %d: %+v", len(safe), safe)
	}
}

func TestResetSafeIntervalsDropsMaterializedState(t *testing.T) {
	s := NewStore(5, 5)
	s.AddForbidden(1, 1, 0, 3)
	s.UpdateCellSafeIntervals(1, 1)
	s.ResetSafeIntervals(5, 5)
	iv, ok := s.GetSafeInterval(1, 1, 0)
	if !ok || iv.Lo != 0 || !math.IsInf(iv.Hi, 1) {
		t.Errorf("expected a fresh [0,+Inf) interval after reset, got %+v, ok=%v", iv, ok)
	}
}

func TestAdjacentNearEpsilonGapsCoalesce(t *testing.T) {
	s := NewStore(5, 5)
	// Forbidding [0,5] and [5+epsilon/2, 10] should coalesce into one gap.
	s.AddForbidden(2, 2, 0, 5)
	s.AddForbidden(2, 2, 5+core.Epsilon/2, 10)
	safe := s.Intervals(2, 2)
	assertDisjointAndOrdered(t, safe)
}
