package search

import (
	"math"
	"testing"

	"github.com/elektrokombinacija/aa-sipp-go/internal/constraints"
	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
	"github.com/elektrokombinacija/aa-sipp-go/internal/los"
)

func newTestSearch(m *core.Map, agent *core.Agent, cfg core.Config) *Search {
	return New(m, los.New(), constraints.New(m.Width, m.Height), agent, cfg)
}

func TestOpenGridFindsDiagonalPath(t *testing.T) {
	m := core.NewMap(5, 5)
	agent := &core.Agent{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 4, J: 4}, Radius: 0.5, Speed: 1, Omega: 90}
	cfg := core.DefaultConfig()

	res := newTestSearch(m, agent, cfg).Run()
	if !res.PathFound {
		t.Fatalf("expected a path, got ErrorKind=%v", res.ErrorKind)
	}
	if len(res.Primary) == 0 {
		t.Fatal("expected a non-empty primary path")
	}
	last := res.Primary[len(res.Primary)-1]
	if last.I != 4 || last.J != 4 {
		t.Errorf("expected path to end at goal, got (%d,%d)", last.I, last.J)
	}
	if last.G != res.PathLength {
		t.Errorf("PathLength should equal final waypoint's G: got %v vs %v", res.PathLength, last.G)
	}
	// 8 cardinal moves at unit speed with no rotation cost and no obstacles.
	if math.Abs(res.PathLength-8) > core.Epsilon {
		t.Errorf("expected path length 8 on an empty grid, got %v", res.PathLength)
	}
}

func TestImpossibleStartReportsNoPathForAgent(t *testing.T) {
	m := core.NewMap(3, 3)
	m.SetBlocked(0, 0, true)
	agent := &core.Agent{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 2, J: 2}, Radius: 0.5, Speed: 1, Omega: 90}

	res := newTestSearch(m, agent, core.DefaultConfig()).Run()
	if res.PathFound {
		t.Fatal("expected no path from a blocked start cell")
	}
	if res.ErrorKind != core.NoPathForAgent {
		t.Errorf("expected NoPathForAgent, got %v", res.ErrorKind)
	}
}

func TestUnreachableGoalBehindWallsReportsNoPathForAgent(t *testing.T) {
	m := core.NewMap(3, 3)
	for j := 0; j < 3; j++ {
		m.SetBlocked(1, j, true)
	}
	agent := &core.Agent{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 2, J: 2}, Radius: 0.4, Speed: 1, Omega: 90}

	res := newTestSearch(m, agent, core.DefaultConfig()).Run()
	if res.PathFound {
		t.Fatal("expected no path across a solid wall")
	}
	if res.ErrorKind != core.NoPathForAgent {
		t.Errorf("expected NoPathForAgent, got %v", res.ErrorKind)
	}
}

func TestAnyAngleShortcutsAroundACorner(t *testing.T) {
	m := core.NewMap(5, 5)
	agent := &core.Agent{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 3, J: 3}, Radius: 0.3, Speed: 1, Omega: 180}

	straightCfg := core.DefaultConfig()
	straightCfg.AllowAnyAngle = false
	straight := newTestSearch(m, agent, straightCfg).Run()

	anyAngleCfg := core.DefaultConfig()
	anyAngleCfg.AllowAnyAngle = true
	anyAngle := newTestSearch(m, agent, anyAngleCfg).Run()

	if !straight.PathFound || !anyAngle.PathFound {
		t.Fatalf("expected both runs to find a path: straight=%v any-angle=%v", straight.PathFound, anyAngle.PathFound)
	}
	if anyAngle.PathLength > straight.PathLength+core.Epsilon {
		t.Errorf("expected any-angle path length <= straight path length: any-angle=%v straight=%v", anyAngle.PathLength, straight.PathLength)
	}
}

func TestDynamicObstacleForcesAWaitState(t *testing.T) {
	m := core.NewMap(5, 1)
	agent := &core.Agent{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 0, J: 4}, Radius: 0.4, Speed: 1, Omega: 90}

	vc := constraints.New(m.Width, m.Height)
	vc.AddConstraints([]core.Section{
		{IStart: 0, JStart: 2, IEnd: 0, JEnd: 2, TStart: 0, TEnd: 10},
	}, 0.4)

	s := New(m, los.New(), vc, agent, core.DefaultConfig())
	res := s.Run()
	if !res.PathFound {
		t.Fatalf("expected a path once the obstacle clears, got ErrorKind=%v", res.ErrorKind)
	}
	if res.PathLength <= 10 {
		t.Errorf("expected the agent to wait out the blockage (path length > 10), got %v", res.PathLength)
	}
}

func TestPrimaryPathInvariantsHoldOnASolvedInstance(t *testing.T) {
	m := core.NewMap(6, 6)
	agent := &core.Agent{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 5, J: 5}, Radius: 0.4, Speed: 1, Omega: 90}
	res := newTestSearch(m, agent, core.DefaultConfig()).Run()
	if !res.PathFound {
		t.Fatal("expected a path")
	}

	for i, wp := range res.Primary {
		if wp.Heading < 0 || wp.Heading >= 360 {
			t.Errorf("waypoint %d heading out of [0,360): %v", i, wp.Heading)
		}
		if i > 0 {
			prev := res.Primary[i-1]
			if wp.G < prev.G-core.Epsilon {
				t.Errorf("waypoint %d time goes backwards: %v then %v", i, prev.G, wp.G)
			}
		}
	}
}

func TestSecondaryPathIsContiguous(t *testing.T) {
	m := core.NewMap(6, 6)
	agent := &core.Agent{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 5, J: 3}, Radius: 0.4, Speed: 1, Omega: 90}
	cfg := core.DefaultConfig()
	cfg.AllowAnyAngle = true
	res := newTestSearch(m, agent, cfg).Run()
	if !res.PathFound {
		t.Fatal("expected a path")
	}

	for i := 1; i < len(res.Secondary); i++ {
		a, b := res.Secondary[i-1], res.Secondary[i]
		di, dj := a.I-b.I, a.J-b.J
		if di < 0 {
			di = -di
		}
		if dj < 0 {
			dj = -dj
		}
		if di > 1 || dj > 1 {
			t.Errorf("secondary path step %d is not a neighbouring cell: (%d,%d) -> (%d,%d)", i, a.I, a.J, b.I, b.J)
		}
	}
}

func TestRotationHeavyPathPrefersStraightMotion(t *testing.T) {
	m := core.NewMap(3, 3)
	agent := &core.Agent{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 0, J: 2}, Radius: 0.4, Speed: 1, Omega: 1}
	cfg := core.DefaultConfig()
	cfg.TWeight = 1

	res := newTestSearch(m, agent, cfg).Run()
	if !res.PathFound {
		t.Fatal("expected a path")
	}
	// The initial heading already points east, so the straight path pays no
	// rotation: 2 unit moves at unit speed. Any S-curve would pay several
	// 90-degree turns at omega=1 and cost far more.
	if math.Abs(res.PathLength-2) > core.Epsilon {
		t.Errorf("expected the straight eastward path costing 2, got %v", res.PathLength)
	}
	for _, wp := range res.Primary {
		if wp.I != 0 {
			t.Errorf("expected the path to stay on row 0, got waypoint %+v", wp)
		}
	}
}
