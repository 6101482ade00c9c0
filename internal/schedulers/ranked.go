package schedulers

import (
	"os-scheduler/internal/core"
)

// rankedPolicy keeps every arrived, incomplete process in a ready set and,
// on each Select, picks the one with the lowest rank. The selected process
// stays in the set until it completes.
type rankedPolicy struct {
	ready   []*core.Process
	rank    func(p *core.Process) int
	resolve func(candidates []*core.Process, current *core.Process) *core.Process
	slice   func(p *core.Process) int
}

func (r *rankedPolicy) Admit(p *core.Process) {
	r.ready = append(r.ready, p)
}

func (r *rankedPolicy) Select(current *core.Process) *core.Process {
	if len(r.ready) == 0 {
		return nil
	}
	best := r.rank(r.ready[0])
	for _, p := range r.ready[1:] {
		best = min(best, r.rank(p))
	}
	candidates := make([]*core.Process, 0, len(r.ready))
	for _, p := range r.ready {
		if r.rank(p) == best {
			candidates = append(candidates, p)
		}
	}
	core.SortByID(candidates)
	return r.resolve(candidates, current)
}

func (r *rankedPolicy) Slice(p *core.Process) int {
	return r.slice(p)
}

func (r *rankedPolicy) Release(p *core.Process) {
	if !p.IsComplete() {
		return
	}
	for i, q := range r.ready {
		if q.ID == p.ID {
			r.ready = append(r.ready[:i], r.ready[i+1:]...)
			return
		}
	}
}

// runToCompletion is the non-preemptive slice.
func runToCompletion(p *core.Process) int {
	return p.RemainingTime
}

// singleTick re-evaluates the ready set after every tick.
func singleTick(*core.Process) int {
	return 1
}

func lowestID(candidates []*core.Process, _ *core.Process) *core.Process {
	return candidates[0]
}
