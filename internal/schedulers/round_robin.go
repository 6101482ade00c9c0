package schedulers

import (
	"fmt"

	"os-scheduler/internal/core"
)

// ProcessQueue is the fifo ready queue of the quantum engines.
type ProcessQueue struct {
	queue []*core.Process
}

func NewProcessQueue() *ProcessQueue {
	return &ProcessQueue{queue: make([]*core.Process, 0)}
}

func (p *ProcessQueue) AddToEnd(process *core.Process) {
	p.queue = append(p.queue, process)
}

func (p *ProcessQueue) RemoveFromTop() (*core.Process, bool) {
	if len(p.queue) > 0 {
		item := p.queue[0]
		p.queue = p.queue[1:]
		return item, true
	}
	return nil, false
}

func (p *ProcessQueue) Len() int {
	return len(p.queue)
}

// RoundRobinScheduler grants each process at most one quantum per turn.
// Arrivals, including those during a slice, join the tail before the
// preempted process is re-enqueued.
type RoundRobinScheduler struct {
	base
}

func (s *RoundRobinScheduler) Name() string {
	return fmt.Sprintf("Round-Robin (quantum=%d)", s.config.Quantum)
}

func (s *RoundRobinScheduler) Schedule(processes []*core.Process) *core.SchedulerResult {
	return s.simulate(s.Name(), processes, &roundRobinPolicy{
		ready:   NewProcessQueue(),
		quantum: s.config.Quantum,
	})
}

type roundRobinPolicy struct {
	ready   *ProcessQueue
	quantum int
}

func (r *roundRobinPolicy) Admit(p *core.Process) {
	r.ready.AddToEnd(p)
}

func (r *roundRobinPolicy) Select(*core.Process) *core.Process {
	next, _ := r.ready.RemoveFromTop()
	return next
}

func (r *roundRobinPolicy) Slice(*core.Process) int {
	return r.quantum
}

func (r *roundRobinPolicy) Release(p *core.Process) {
	if !p.IsComplete() {
		r.ready.AddToEnd(p)
	}
}
