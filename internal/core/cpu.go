package core

import (
	"log/slog"
	"sort"
)

// Policy decides which ready process holds the cpu next and for how long.
// A policy instance is used for a single run and is never shared.
type Policy interface {
	// Admit hands over a process whose arrival time has been reached.
	Admit(p *Process)
	// Select returns the next process to run, or nil if none is ready.
	// current is the process that ran during the previous slice, if any.
	Select(current *Process) *Process
	// Slice is the maximum number of ticks p may run before Select is consulted again.
	Slice(p *Process) int
	// Release takes p back after its slice. p may have completed.
	Release(p *Process)
}

type CpuMetric struct {
	TotalTime       int     `json:"total_time" yaml:"total_time"`
	UtilizationTime int     `json:"utilization_time" yaml:"utilization_time"`
	IdleTime        int     `json:"idle_time" yaml:"idle_time"`
	Utilization     float64 `json:"utilization" yaml:"utilization"`
	Throughput      float64 `json:"throughput" yaml:"throughput"`
}

// Trace is everything CpuExecute observed while driving a process set.
type Trace struct {
	Timeline        []TimelineEntry
	ContextSwitches int
	Cpu             CpuMetric
}

// CpuExecute drives processes through policy on a discrete clock until every
// process has completed. Processes are mutated in place; callers pass a copy.
// While nothing is ready the clock jumps to the next arrival, so idle time
// shows up as gaps between timeline entries.
func CpuExecute(processes []*Process, policy Policy, logger *slog.Logger) Trace {
	var (
		clock     int
		busy      int
		completed int
		current   *Process
		trace     = Trace{Timeline: make([]TimelineEntry, 0)}
		admitted  = make([]bool, len(processes))
	)

	admit := func() {
		for i, p := range processes {
			if !admitted[i] && p.ArrivalTime <= clock {
				admitted[i] = true
				policy.Admit(p)
			}
		}
	}

	for completed < len(processes) {
		admit()
		selected := policy.Select(current)
		if selected == nil {
			next, ok := nextArrival(processes, admitted)
			if !ok {
				logger.Warn("no runnable process left", "clock", clock, "completed", completed)
				break
			}
			clock = next // cpu idle until the next arrival
			continue
		}

		if current != nil && current.ID != selected.ID {
			trace.ContextSwitches++
		}
		if selected.ResponseTime == NotStarted {
			selected.ResponseTime = clock - selected.ArrivalTime
		}
		current = selected

		start := clock
		slice := max(1, policy.Slice(selected))
		logger.Debug("dispatch", "pid", selected.ID, "clock", clock, "slice", slice)
		for ran := 0; ran < slice && !selected.IsComplete(); ran++ {
			selected.Execute()
			clock++
			busy++
			admit()
		}

		if selected.IsComplete() {
			selected.CompletionTime = clock
			selected.Status = StatusCompleted
			completed++
			logger.Debug("process completed", "pid", selected.ID, "clock", clock)
		} else {
			selected.Status = StatusReady
		}
		policy.Release(selected)

		trace.Timeline = append(trace.Timeline, TimelineEntry{
			StartTime:     start,
			EndTime:       clock,
			ProcessID:     selected.ID,
			ProcessStates: waitingSnapshot(processes, clock, selected.ID),
		})
	}

	trace.Cpu = CpuMetric{
		TotalTime:       clock,
		UtilizationTime: busy,
		IdleTime:        clock - busy,
	}
	if clock > 0 {
		trace.Cpu.Utilization = float64(busy) / float64(clock)
		trace.Cpu.Throughput = float64(len(processes)) / float64(clock)
	}
	return trace
}

// nextArrival returns the earliest arrival time among processes not yet admitted.
func nextArrival(processes []*Process, admitted []bool) (int, bool) {
	next, found := 0, false
	for i, p := range processes {
		if admitted[i] {
			continue
		}
		if !found || p.ArrivalTime < next {
			next, found = p.ArrivalTime, true
		}
	}
	return next, found
}

func waitingSnapshot(processes []*Process, clock, runningID int) map[int]Status {
	states := make(map[int]Status)
	for _, p := range processes {
		if p.ID != runningID && p.ArrivalTime <= clock && !p.IsComplete() {
			states[p.ID] = StatusWaiting
		}
	}
	return states
}

// SortByID orders processes by ascending id in place.
func SortByID(processes []*Process) {
	sort.SliceStable(processes, func(i, j int) bool {
		return processes[i].ID < processes[j].ID
	})
}
