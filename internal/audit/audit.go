// Package audit implements ConflictAuditor: a post-hoc sampling check over
// a batch of solved paths, independent of the search that produced them.
package audit

import "github.com/elektrokombinacija/aa-sipp-go/internal/core"

// Auditor samples every solved agent's path at a fixed time resolution and
// reports any pair found closer than the sum of their radii.
type Auditor struct {
	DeltaT float64
}

// New creates an Auditor with the default Δt = 0.1.
func New() *Auditor {
	return &Auditor{DeltaT: 0.1}
}

// Audit checks every unordered pair of solved agents for a collision.
// Unsolved agents (no PathResult, or PathFound == false) are skipped. A
// solved agent is treated as resting at its final waypoint for any sampled
// time past the end of its path, so a still-moving agent can still be
// flagged against one that has already finished.
//
// This samples continuous position interpolated directly from each
// PrimaryPath rather than snapping to SecondaryPath's per-cell rasterisation,
// trading a literal reading of "sample the secondary path" for exact
// sub-cell distances at each sample instant; see DESIGN.md.
func (a *Auditor) Audit(agents []*core.Agent, results map[core.AgentID]*core.PathResult) []core.Conflict {
	dt := a.DeltaT
	if dt <= 0 {
		dt = 0.1
	}

	type solvedAgent struct {
		agent *core.Agent
		path  core.PrimaryPath
	}
	var solved []solvedAgent
	maxT := 0.0
	for _, ag := range agents {
		res, ok := results[ag.ID]
		if !ok || !res.PathFound || len(res.Primary) == 0 {
			continue
		}
		solved = append(solved, solvedAgent{agent: ag, path: res.Primary})
		if last := res.Primary[len(res.Primary)-1].G; last > maxT {
			maxT = last
		}
	}
	if len(solved) < 2 {
		return nil
	}

	var conflicts []core.Conflict
	for t := 0.0; t <= maxT+core.Epsilon; t += dt {
		for i := 0; i < len(solved); i++ {
			pi, oki := positionAt(solved[i].path, t)
			if !oki {
				continue
			}
			for j := i + 1; j < len(solved); j++ {
				pj, okj := positionAt(solved[j].path, t)
				if !okj {
					continue
				}
				dist := core.Euclidean(pi, pj)
				if dist+core.Epsilon < solved[i].agent.Radius+solved[j].agent.Radius {
					conflicts = append(conflicts, core.Conflict{
						Agent1: solved[i].agent.ID,
						Agent2: solved[j].agent.ID,
						I:      (pi.I + pj.I) / 2,
						J:      (pi.J + pj.J) / 2,
						T:      t,
					})
				}
			}
		}
	}
	return conflicts
}

// positionAt interpolates a PrimaryPath's continuous position at time t. It
// reports false if t precedes the path's first waypoint; time past the last
// waypoint holds position at that waypoint.
func positionAt(p core.PrimaryPath, t float64) (core.Point, bool) {
	if len(p) == 0 {
		return core.Point{}, false
	}
	if t < p[0].G-core.Epsilon {
		return core.Point{}, false
	}
	for i := 1; i < len(p); i++ {
		a, b := p[i-1], p[i]
		if t <= b.G+core.Epsilon {
			dur := b.G - a.G
			if dur <= core.Epsilon {
				return core.Point{I: float64(b.I), J: float64(b.J)}, true
			}
			frac := (t - a.G) / dur
			if frac < 0 {
				frac = 0
			} else if frac > 1 {
				frac = 1
			}
			return core.Point{
				I: float64(a.I) + frac*float64(b.I-a.I),
				J: float64(a.J) + frac*float64(b.J-a.J),
			}, true
		}
	}
	last := p[len(p)-1]
	return core.Point{I: float64(last.I), J: float64(last.J)}, true
}
