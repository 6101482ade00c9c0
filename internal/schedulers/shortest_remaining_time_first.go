package schedulers

import (
	"os-scheduler/internal/core"
)

// ShortestRemainingTimeFirst is the preemptive SJF: the ready set is
// re-ranked by remaining time after every tick.
type ShortestRemainingTimeFirst struct {
	base
}

func (s *ShortestRemainingTimeFirst) Name() string {
	return "SRTF (Shortest Remaining Time First)"
}

func (s *ShortestRemainingTimeFirst) Schedule(processes []*core.Process) *core.SchedulerResult {
	policy := &rankedPolicy{
		rank:    func(p *core.Process) int { return p.RemainingTime },
		resolve: s.tieBreaker().Resolve,
		slice:   singleTick,
	}
	return s.simulate(s.Name(), processes, policy)
}
