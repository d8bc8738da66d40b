package scheduler

import (
	"math/rand"

	"github.com/elektrokombinacija/aa-sipp-go/internal/core"
)

// changePriorities produces the next priority permutation to try after
// badAgent failed to find a path. It returns ok=false when the policy
// gives up.
func changePriorities(policy core.ReschedulingPolicy, order []core.AgentID, badAgent core.AgentID, history [][]core.AgentID, rng *rand.Rand) ([]core.AgentID, bool) {
	switch policy {
	case core.NoRescheduling:
		return nil, false

	case core.Ruled:
		next := moveToFront(order, badAgent)
		if alreadyTried(next, history) {
			return nil, false
		}
		return next, true

	case core.RandomRescheduling:
		const maxTries = 1_000_000
		for i := 0; i < maxTries; i++ {
			next := append([]core.AgentID(nil), order...)
			rng.Shuffle(len(next), func(a, b int) { next[a], next[b] = next[b], next[a] })
			if !alreadyTried(next, history) {
				return next, true
			}
		}
		return nil, false

	default:
		return nil, false
	}
}

func alreadyTried(order []core.AgentID, history [][]core.AgentID) bool {
	for _, h := range history {
		if samePermutation(h, order) {
			return true
		}
	}
	return false
}
