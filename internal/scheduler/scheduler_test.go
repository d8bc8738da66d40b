package scheduler

import (
	"testing"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

func TestSingleAgentOnOpenGridSolves(t *testing.T) {
	m := core.NewMap(5, 5)
	agents := []*core.Agent{
		{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 4, J: 4}, Radius: 0.4, Speed: 1, Omega: 90},
	}
	res := New(m, agents, nil, core.DefaultConfig()).Run()
	if !res.PathFound {
		t.Fatalf("expected the job to solve, got ErrorKind=%v", res.ErrorKind)
	}
	if res.Tries != 1 {
		t.Errorf("expected exactly 1 try with a single agent, got %d", res.Tries)
	}
	if res.AgentsSolved != 1 {
		t.Errorf("expected 1 agent solved, got %d", res.AgentsSolved)
	}
}

func TestCorridorCrossingBothAgentsSolveWithFIFO(t *testing.T) {
	m := core.NewMap(10, 10)
	agents := []*core.Agent{
		{ID: 0, Start: core.Cell{I: 0, J: 5}, Goal: core.Cell{I: 9, J: 5}, Radius: 0.4, Speed: 1, Omega: 90},
		{ID: 1, Start: core.Cell{I: 5, J: 0}, Goal: core.Cell{I: 5, J: 9}, Radius: 0.4, Speed: 1, Omega: 90},
	}
	cfg := core.DefaultConfig()
	cfg.InitialPrioritization = core.FIFO

	res := New(m, agents, nil, cfg).Run()
	if !res.PathFound {
		t.Fatalf("expected both agents to solve, got ErrorKind=%v", res.ErrorKind)
	}
	if res.AgentsSolved != 2 {
		t.Errorf("expected 2 agents solved, got %d", res.AgentsSolved)
	}
}

// blockingCorridorAgents builds a 3-cell top corridor with a one-cell side
// pocket below its middle. Agent 0 starts in the pocket and its goal is the
// corridor's middle cell; agent 1 crosses the corridor end to end. Planned
// in FIFO order, agent 0 reaches the middle cell at t=1 and parks there
// forever, before agent 1 (earliest arrival t=1) can clear it, so agent 1
// fails. Planned with agent 1 first, agent 1 only transits the middle cell,
// and agent 0 waits in the pocket (off agent 1's route) until it clears.
// This is the shape of a FIFO-infeasible, reverse-feasible instance.
func blockingCorridorAgents() (*core.Map, []*core.Agent) {
	m := core.NewMap(3, 2)
	m.SetBlocked(1, 0, true)
	m.SetBlocked(1, 2, true)
	agents := []*core.Agent{
		{ID: 0, Start: core.Cell{I: 1, J: 1}, Goal: core.Cell{I: 0, J: 1}, Radius: 0.4, Speed: 1, Omega: 90},
		{ID: 1, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 0, J: 2}, Radius: 0.4, Speed: 1, Omega: 90},
	}
	return m, agents
}

func TestNoReschedulingGivesUpAfterOneTry(t *testing.T) {
	m, agents := blockingCorridorAgents()
	cfg := core.DefaultConfig()
	cfg.Rescheduling = core.NoRescheduling

	res := New(m, agents, nil, cfg).Run()
	if res.Tries != 1 {
		t.Errorf("expected exactly 1 try with NoRescheduling, got %d", res.Tries)
	}
	if res.PathFound {
		t.Fatal("expected FIFO order to fail on the blocking corridor")
	}
	if res.ErrorKind != core.PrioritisationExhausted {
		t.Errorf("expected PrioritisationExhausted, got %v", res.ErrorKind)
	}
}

func TestRuledReschedulingRetriesWithFailedAgentFirst(t *testing.T) {
	m, agents := blockingCorridorAgents()
	cfg := core.DefaultConfig()
	cfg.Rescheduling = core.Ruled

	res := New(m, agents, nil, cfg).Run()
	if !res.PathFound {
		t.Fatalf("expected the reversed order to solve, got ErrorKind=%v", res.ErrorKind)
	}
	if res.Tries != 2 {
		t.Errorf("expected FIFO to fail then the reversed order to solve on try 2, got %d", res.Tries)
	}
}

func TestBlockedStartExhaustsRuledReschedulingAfterOneTry(t *testing.T) {
	m := core.NewMap(3, 3)
	m.SetBlocked(0, 0, true)
	agents := []*core.Agent{
		{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 2, J: 2}, Radius: 0.4, Speed: 1, Omega: 90},
	}
	cfg := core.DefaultConfig()
	cfg.Rescheduling = core.Ruled

	res := New(m, agents, nil, cfg).Run()
	if res.PathFound {
		t.Fatal("expected no path from a blocked start cell")
	}
	// Moving the only agent to the front reproduces the already-tried
	// permutation, so RULED gives up immediately.
	if res.Tries != 1 {
		t.Errorf("expected 1 try, got %d", res.Tries)
	}
	if res.ErrorKind != core.PrioritisationExhausted {
		t.Errorf("expected PrioritisationExhausted, got %v", res.ErrorKind)
	}
	if pr := res.PerAgent[0]; pr == nil || pr.ErrorKind != core.NoPathForAgent {
		t.Errorf("expected the agent to report NoPathForAgent, got %+v", pr)
	}
}

func TestDynamicObstacleIsRegisteredBeforeAgentsPlan(t *testing.T) {
	m := core.NewMap(5, 1)
	agents := []*core.Agent{
		{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 0, J: 4}, Radius: 0.4, Speed: 1, Omega: 90},
	}
	obstacles := []*core.DynamicObstacle{
		{ID: 0, Radius: 0.4, Sections: []core.Section{
			{IStart: 0, JStart: 2, IEnd: 0, JEnd: 2, TStart: 0, TEnd: 10},
		}},
	}
	res := New(m, agents, obstacles, core.DefaultConfig()).Run()
	if !res.PathFound {
		t.Fatalf("expected a path once the obstacle clears, got ErrorKind=%v", res.ErrorKind)
	}
	if res.PathLength <= 10 {
		t.Errorf("expected the agent to wait out the obstacle, got path length %v", res.PathLength)
	}
}

// TestStartSafeIntervalDoesNotBlockAnAgentsOwnStart guards against a
// start-area reservation registered for every agent up front (so later
// agents avoid camping on not-yet-planned agents' starts) ever blocking
// an agent's own search once its own turn arrives: every agent must still
// be free to be at its own start cell at t=0.
func TestStartSafeIntervalDoesNotBlockAnAgentsOwnStart(t *testing.T) {
	m := core.NewMap(5, 5)
	agents := []*core.Agent{
		{ID: 0, Start: core.Cell{I: 0, J: 0}, Goal: core.Cell{I: 4, J: 0}, Radius: 0.4, Speed: 1, Omega: 90},
		{ID: 1, Start: core.Cell{I: 0, J: 4}, Goal: core.Cell{I: 4, J: 4}, Radius: 0.4, Speed: 1, Omega: 90},
		{ID: 2, Start: core.Cell{I: 2, J: 2}, Goal: core.Cell{I: 0, J: 2}, Radius: 0.4, Speed: 1, Omega: 90},
	}
	cfg := core.DefaultConfig()
	cfg.StartSafeInterval = 5
	cfg.InitialPrioritization = core.FIFO
	cfg.Rescheduling = core.NoRescheduling

	res := New(m, agents, nil, cfg).Run()
	if !res.PathFound {
		t.Fatalf("expected every agent to solve despite a nonzero start-safe-interval, got ErrorKind=%v", res.ErrorKind)
	}
	if res.AgentsSolved != 3 {
		t.Errorf("expected all 3 agents solved, got %d", res.AgentsSolved)
	}
	for id, pr := range res.PerAgent {
		if !pr.PathFound {
			t.Errorf("agent %d failed to plan: %v", id, pr.ErrorKind)
			continue
		}
		if pr.Primary[0].G > core.Epsilon {
			t.Errorf("agent %d's own path departs its start at t=%v, expected t=0", id, pr.Primary[0].G)
		}
	}
}
