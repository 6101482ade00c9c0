package schedulers

import (
	"os-scheduler/internal/core"
)

// lower value means more urgent
func byStaticPriority(p *core.Process) int {
	return p.Priority
}

// PriorityNonPreemptive runs the most urgent ready process to completion.
type PriorityNonPreemptive struct {
	base
}

func (s *PriorityNonPreemptive) Name() string {
	return "Priority (non-preemptive)"
}

func (s *PriorityNonPreemptive) Schedule(processes []*core.Process) *core.SchedulerResult {
	policy := &rankedPolicy{
		rank:    byStaticPriority,
		resolve: s.tieBreaker().Resolve,
		slice:   runToCompletion,
	}
	return s.simulate(s.Name(), processes, policy)
}

// PriorityWithPreemption re-ranks the ready set by static priority after
// every tick, so a more urgent arrival takes the cpu immediately.
type PriorityWithPreemption struct {
	base
}

func (s *PriorityWithPreemption) Name() string {
	return "Priority (preemptive)"
}

func (s *PriorityWithPreemption) Schedule(processes []*core.Process) *core.SchedulerResult {
	policy := &rankedPolicy{
		rank:    byStaticPriority,
		resolve: s.tieBreaker().Resolve,
		slice:   singleTick,
	}
	return s.simulate(s.Name(), processes, policy)
}
