package schedulers

import (
	"os-scheduler/internal/core"
)

// FirstComeFirstServe runs processes to completion in arrival order; equal
// arrivals go by id.
type FirstComeFirstServe struct {
	base
}

func (s *FirstComeFirstServe) Name() string {
	return "FCFS (First Come, First Served)"
}

func (s *FirstComeFirstServe) Schedule(processes []*core.Process) *core.SchedulerResult {
	policy := &rankedPolicy{
		rank:    func(p *core.Process) int { return p.ArrivalTime },
		resolve: lowestID,
		slice:   runToCompletion,
	}
	return s.simulate(s.Name(), processes, policy)
}
