// Package state holds the visualizer's view over a planning job: the
// static map and agents, the result produced by the scheduler, and the
// playback clock scrubbing through it.
package state

import (
	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

// State is everything the visualizer's widgets read from.
type State struct {
	Map       *core.Map
	Agents    []*core.Agent
	Obstacles []*core.DynamicObstacle
	Result    *core.AggregateResult

	Playback *PlaybackState

	Selected map[core.AgentID]bool
}

// New builds a State over a completed (or partial) planning result.
func New(m *core.Map, agents []*core.Agent, obstacles []*core.DynamicObstacle, result *core.AggregateResult) *State {
	return &State{
		Map:       m,
		Agents:    agents,
		Obstacles: obstacles,
		Result:    result,
		Playback:  NewPlaybackState(result.Makespan),
		Selected:  make(map[core.AgentID]bool),
	}
}

// CurrentPositions interpolates every solved agent's position at the
// playback clock's current time; agents with no path or that have not
// started yet sit at their start cell.
func (s *State) CurrentPositions() map[core.AgentID]core.Point {
	positions := make(map[core.AgentID]core.Point, len(s.Agents))
	for _, a := range s.Agents {
		res := s.Result.PerAgent[a.ID]
		if res == nil || !res.PathFound || len(res.Primary) == 0 {
			positions[a.ID] = core.Point{I: float64(a.Start.I), J: float64(a.Start.J)}
			continue
		}
		positions[a.ID] = interpolate(res.Primary, s.Playback.CurrentTime)
	}
	return positions
}

// PathHistory returns the portion of an agent's primary path up to the
// playback clock's current time, as a trail for drawing.
func (s *State) PathHistory(id core.AgentID) []core.Point {
	res := s.Result.PerAgent[id]
	if res == nil || !res.PathFound {
		return nil
	}
	var trail []core.Point
	for _, wp := range res.Primary {
		if wp.G > s.Playback.CurrentTime {
			break
		}
		trail = append(trail, core.Point{I: float64(wp.I), J: float64(wp.J)})
	}
	trail = append(trail, interpolate(res.Primary, s.Playback.CurrentTime))
	return trail
}

// interpolate linearly interpolates a PrimaryPath's continuous position at
// time t, holding position at the nearest endpoint outside the path's span.
func interpolate(path core.PrimaryPath, t float64) core.Point {
	if len(path) == 0 {
		return core.Point{}
	}
	if t <= path[0].G {
		return core.Point{I: float64(path[0].I), J: float64(path[0].J)}
	}
	last := path[len(path)-1]
	if t >= last.G {
		return core.Point{I: float64(last.I), J: float64(last.J)}
	}
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		if t > b.G {
			continue
		}
		dur := b.G - a.G
		if dur <= core.Epsilon {
			return core.Point{I: float64(a.I), J: float64(a.J)}
		}
		frac := (t - a.G) / dur
		return core.Point{
			I: float64(a.I) + frac*float64(b.I-a.I),
			J: float64(a.J) + frac*float64(b.J-a.J),
		}
	}
	return core.Point{I: float64(last.I), J: float64(last.J)}
}

// HeadingAt returns the heading an agent is travelling at the playback
// clock's current time: the arrival heading of the waypoint it is
// currently en route to, or its final arrival heading once it has reached
// the goal.
func (s *State) HeadingAt(id core.AgentID, t float64) float64 {
	res := s.Result.PerAgent[id]
	if res == nil || !res.PathFound || len(res.Primary) == 0 {
		return 0
	}
	path := res.Primary
	for i := 1; i < len(path); i++ {
		if t <= path[i].G {
			return path[i].Heading
		}
	}
	return path[len(path)-1].Heading
}

// ToggleSelect toggles an agent's selection highlight.
func (s *State) ToggleSelect(id core.AgentID) {
	if s.Selected[id] {
		delete(s.Selected, id)
	} else {
		s.Selected[id] = true
	}
}
