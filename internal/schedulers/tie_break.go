package schedulers

import (
	"math/rand"

	"os-scheduler/internal/core"
)

// tieBreakSeed keeps the random rule reproducible across runs with the same input.
const tieBreakSeed = 42

// TieBreaker picks one process among candidates that tie on an engine's
// primary ranking key:
//  1. the process already holding the cpu, if it is a candidate
//  2. the candidate with the least remaining time
//  3. a pseudo-random candidate drawn with a fixed seed
type TieBreaker struct {
	mode core.TieBreakMode
	rng  *rand.Rand
}

// NewTieBreaker returns a resolver for a single engine run.
func NewTieBreaker(mode core.TieBreakMode) *TieBreaker {
	t := &TieBreaker{mode: mode}
	if mode == core.TieBreakStream {
		t.rng = rand.New(rand.NewSource(tieBreakSeed))
	}
	return t
}

func (t *TieBreaker) Resolve(candidates []*core.Process, current *core.Process) *core.Process {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}

	if current != nil {
		for _, c := range candidates {
			if c.ID == current.ID {
				return c
			}
		}
	}

	shortest := leastRemaining(candidates)
	if len(shortest) == 1 {
		return shortest[0]
	}
	return shortest[t.intn(len(shortest))]
}

func (t *TieBreaker) intn(n int) int {
	if t.rng != nil {
		return t.rng.Intn(n)
	}
	return rand.New(rand.NewSource(tieBreakSeed)).Intn(n)
}

func leastRemaining(candidates []*core.Process) []*core.Process {
	least := candidates[0].RemainingTime
	for _, c := range candidates[1:] {
		least = min(least, c.RemainingTime)
	}
	shortest := make([]*core.Process, 0, len(candidates))
	for _, c := range candidates {
		if c.RemainingTime == least {
			shortest = append(shortest, c)
		}
	}
	return shortest
}
