package schedulers

import (
	"os-scheduler/internal/core"
)

// ShortestJobFirst picks the ready process with the smallest burst and runs it
// to completion.
type ShortestJobFirst struct {
	base
}

func (s *ShortestJobFirst) Name() string {
	return "SJF (Shortest Job First)"
}

func (s *ShortestJobFirst) Schedule(processes []*core.Process) *core.SchedulerResult {
	policy := &rankedPolicy{
		rank:    func(p *core.Process) int { return p.BurstTime },
		resolve: s.tieBreaker().Resolve,
		slice:   runToCompletion,
	}
	return s.simulate(s.Name(), processes, policy)
}
