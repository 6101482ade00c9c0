package schedulers

import (
	"fmt"
	"sort"

	"os-scheduler/internal/core"
)

// RoundRobinAging is round-robin over a queue ordered by working priority.
// After every slice the processes still queued age by the configured rate,
// and a preempted process goes back with its static priority restored.
// There is no preemption by priority inside a slice.
type RoundRobinAging struct {
	base
}

func (s *RoundRobinAging) Name() string {
	return fmt.Sprintf("Round-Robin with Priority and Aging (quantum=%d, aging=%d)", s.config.Quantum, s.config.AgingRate)
}

func (s *RoundRobinAging) Schedule(processes []*core.Process) *core.SchedulerResult {
	return s.simulate(s.Name(), processes, &agingPolicy{
		ready:     make([]*core.Process, 0),
		quantum:   s.config.Quantum,
		agingRate: s.config.AgingRate,
	})
}

type agingPolicy struct {
	ready     []*core.Process
	quantum   int
	agingRate int
}

func (a *agingPolicy) Admit(p *core.Process) {
	a.ready = append(a.ready, p)
}

func (a *agingPolicy) Select(*core.Process) *core.Process {
	if len(a.ready) == 0 {
		return nil
	}
	sort.SliceStable(a.ready, func(i, j int) bool {
		if a.ready[i].CurrentPriority != a.ready[j].CurrentPriority {
			return a.ready[i].CurrentPriority < a.ready[j].CurrentPriority
		}
		return a.ready[i].ID < a.ready[j].ID
	})
	next := a.ready[0]
	a.ready = a.ready[1:]
	return next
}

func (a *agingPolicy) Slice(*core.Process) int {
	return a.quantum
}

func (a *agingPolicy) Release(p *core.Process) {
	for _, waiting := range a.ready {
		waiting.Age(a.agingRate)
	}
	if !p.IsComplete() {
		p.ResetPriority()
		a.ready = append(a.ready, p)
	}
}
