// Package scheduler implements PriorityScheduler: the outer loop that
// orders agents, runs a SingleAgentSearch per agent against the
// time-space footprint of already-planned agents, and reshuffles
// priorities on failure.
package scheduler

import (
	"math/rand"
	"time"

	"github.com/elektrokombinacija/aa-sipp-go/internal/constraints"
	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
	"github.com/elektrokombinacija/aa-sipp-go/internal/los"
	"github.com/elektrokombinacija/aa-sipp-go/internal/search"
)

// Scheduler holds the static job description: the map, the agents and
// their dynamic obstacles, and the planner configuration.
type Scheduler struct {
	Map       *core.Map
	Agents    []*core.Agent
	Obstacles []*core.DynamicObstacle
	Cfg       core.Config
}

// New creates a Scheduler for one planning job.
func New(m *core.Map, agents []*core.Agent, obstacles []*core.DynamicObstacle, cfg core.Config) *Scheduler {
	return &Scheduler{Map: m, Agents: agents, Obstacles: obstacles, Cfg: cfg}
}

// Run executes the main loop and returns the job's AggregateResult.
func (sch *Scheduler) Run() *core.AggregateResult {
	begin := time.Now()
	result := core.NewAggregateResult(len(sch.Agents))

	// TimeLimit budgets the whole job: one deadline shared by every
	// search of every attempt.
	var deadline time.Time
	if sch.Cfg.TimeLimit > 0 {
		deadline = begin.Add(time.Duration(sch.Cfg.TimeLimit * float64(time.Second)))
	}

	byID := make(map[core.AgentID]*core.Agent, len(sch.Agents))
	for _, a := range sch.Agents {
		byID[a.ID] = a
	}

	order := initialOrder(sch.Agents, sch.Cfg)
	var history [][]core.AgentID
	rng := rand.New(rand.NewSource(sch.Cfg.RandSeed))

	for {
		if !deadline.IsZero() && time.Now().After(deadline) {
			result.ErrorKind = core.Timeout
			break
		}
		result.Tries++
		history = append(history, append([]core.AgentID(nil), order...))

		perAgent, ok, badAgent, timedOut := sch.attempt(order, byID, deadline)
		// Paths from an abandoned ordering were planned against different
		// constraints, so the result only ever carries the last attempt's
		// paths; the node counters stay cumulative across attempts.
		result.PerAgent = perAgent
		for _, pr := range perAgent {
			result.NodesCreated += pr.NodesCreated
			result.NumberOfSteps += pr.NumberOfSteps
		}

		if ok {
			result.PathFound = true
			result.Priority = order
			break
		}
		if timedOut {
			result.ErrorKind = core.Timeout
			result.Priority = order
			break
		}

		next, changed := changePriorities(sch.Cfg.Rescheduling, order, badAgent, history, rng)
		if !changed {
			result.ErrorKind = core.PrioritisationExhausted
			result.Priority = order
			break
		}
		order = next
	}

	for _, pr := range result.PerAgent {
		if pr.PathFound {
			result.AgentsSolved++
			result.PathLength += pr.PathLength
			if pr.PathLength > result.Makespan {
				result.Makespan = pr.PathLength
			}
		}
	}
	result.TotalTime = time.Since(begin).Seconds()
	return result
}

// attempt runs a single outer-loop iteration: a fresh VelocityConstraints,
// dynamic obstacles injected, every agent's start-area reservation injected,
// then every agent in order planned in turn against the start-area
// reservations of the agents not yet planned and the registered paths of
// the agents already planned (each agent's own reservation is cleared once
// it plans, replaced by its real path). ok is true iff every agent found a
// path; otherwise badAgent names the first failure. The deadline is
// checked after each agent's search, and timedOut distinguishes running
// out of budget from a genuine planning failure so the caller does not
// reschedule on a timeout.
func (sch *Scheduler) attempt(order []core.AgentID, byID map[core.AgentID]*core.Agent, deadline time.Time) (map[core.AgentID]*core.PathResult, bool, core.AgentID, bool) {
	vc := constraints.New(sch.Map.Width, sch.Map.Height)
	for _, obs := range sch.Obstacles {
		vc.AddConstraints(obs.Sections, obs.Radius)
	}

	perAgent := make(map[core.AgentID]*core.PathResult, len(order))
	reserver := los.New()

	// Register every agent's start-area reservation up front: at this
	// point in an attempt, none of them have planned yet. SetCurrentAgent
	// (set inside each agent's own search) exempts that agent from its own
	// reservation, so there is no need to remove it again once its turn
	// arrives.
	for _, id := range order {
		a := byID[id]
		reserver.SetSize(a.Radius)
		cells := reserver.GetCells(a.Start.I, a.Start.J)
		vc.AddStartConstraint(id, sch.Cfg.StartSafeInterval, cells)
	}

	for k, id := range order {
		agent := byID[id]

		s := search.New(sch.Map, los.New(), vc, agent, sch.Cfg)
		s.Deadline = deadline
		res := s.Run()
		perAgent[id] = &res
		if !res.PathFound {
			return perAgent, false, id, res.ErrorKind == core.Timeout
		}
		vc.AddConstraints(pathToSections(res.Primary), agent.Radius)
		vc.ClearStartConstraint(id)
		if k+1 < len(order) && !deadline.IsZero() && time.Now().After(deadline) {
			return perAgent, false, order[k+1], true
		}
	}
	return perAgent, true, 0, false
}

// pathToSections converts a solved agent's primary path into the same
// Section representation a dynamic obstacle's trajectory uses, so later
// agents' searches see it through the identical VelocityConstraints query.
// A final unbounded section pins the agent at its goal forever, matching
// the search's own termination condition (the goal state's safe interval
// extends to +Inf).
func pathToSections(p core.PrimaryPath) []core.Section {
	if len(p) == 0 {
		return nil
	}
	secs := make([]core.Section, 0, len(p))
	for i := 1; i < len(p); i++ {
		a, b := p[i-1], p[i]
		secs = append(secs, core.Section{
			IStart: float64(a.I), JStart: float64(a.J),
			IEnd: float64(b.I), JEnd: float64(b.J),
			TStart: a.G, TEnd: b.G,
		})
	}
	last := p[len(p)-1]
	secs = append(secs, core.Section{
		IStart: float64(last.I), JStart: float64(last.J),
		IEnd: float64(last.I), JEnd: float64(last.J),
		TStart: last.G, TEnd: core.Infinity,
	})
	return secs
}
