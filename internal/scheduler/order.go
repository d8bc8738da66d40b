package scheduler

import (
	"math/rand"
	"sort"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

// initialOrder returns the starting priority permutation for a planning job,
// per the policy in cfg.InitialPrioritization.
func initialOrder(agents []*core.Agent, cfg core.Config) []core.AgentID {
	order := make([]core.AgentID, len(agents))
	for i, a := range agents {
		order[i] = a.ID
	}

	switch cfg.InitialPrioritization {
	case core.FIFO:
		return order
	case core.LongestF, core.ShortestF:
		byID := make(map[core.AgentID]*core.Agent, len(agents))
		for _, a := range agents {
			byID[a.ID] = a
		}
		ascending := cfg.InitialPrioritization == core.ShortestF
		sort.SliceStable(order, func(i, j int) bool {
			di := byID[order[i]].StartGoalDistance()
			dj := byID[order[j]].StartGoalDistance()
			if ascending {
				return di < dj
			}
			return di > dj
		})
		return order
	case core.RandomOrder:
		rng := rand.New(rand.NewSource(cfg.RandSeed))
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		return order
	default:
		return order
	}
}

// samePermutation reports whether two orderings are identical.
func samePermutation(a, b []core.AgentID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// moveToFront returns a copy of order with id relocated to position 0,
// preserving the relative order of everyone else (the RULED policy).
func moveToFront(order []core.AgentID, id core.AgentID) []core.AgentID {
	out := make([]core.AgentID, 0, len(order))
	out = append(out, id)
	for _, a := range order {
		if a != id {
			out = append(out, a)
		}
	}
	return out
}
