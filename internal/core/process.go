package core

import "fmt"

// NotStarted marks a process that has never held the cpu.
const NotStarted = -1

type Status string

const (
	StatusReady     Status = "READY"
	StatusRunning   Status = "RUNNING"
	StatusWaiting   Status = "WAITING" // only recorded in timeline snapshots
	StatusCompleted Status = "COMPLETED"
)

// Process is the mutable simulation state of one task.
type Process struct {
	ID              int    `json:"id"`
	ArrivalTime     int    `json:"arrival_time"`
	BurstTime       int    `json:"burst_time"`
	RemainingTime   int    `json:"remaining_time"`
	Priority        int    `json:"priority"`
	CurrentPriority int    `json:"current_priority"`
	ResponseTime    int    `json:"response_time"`
	CompletionTime  int    `json:"completion_time"`
	Status          Status `json:"status"`
}

func NewProcess(id, arrivalTime, burstTime, priority int) *Process {
	return &Process{
		ID:              id,
		ArrivalTime:     arrivalTime,
		BurstTime:       burstTime,
		RemainingTime:   burstTime,
		Priority:        priority,
		CurrentPriority: priority,
		ResponseTime:    NotStarted,
		Status:          StatusReady,
	}
}

func (p *Process) Clone() *Process {
	c := *p
	return &c
}

// CloneAll deep copies a process list so an engine can mutate it freely.
func CloneAll(processes []*Process) []*Process {
	copied := make([]*Process, 0, len(processes))
	for _, p := range processes {
		copied = append(copied, p.Clone())
	}
	return copied
}

// Execute runs the process for a single tick.
func (p *Process) Execute() {
	if p.RemainingTime > 0 {
		p.RemainingTime--
	}
	p.Status = StatusRunning
}

func (p *Process) IsComplete() bool {
	return p.RemainingTime <= 0
}

// Age boosts the working priority by rate, never below 1.
func (p *Process) Age(rate int) {
	p.CurrentPriority = max(1, p.CurrentPriority-rate)
}

func (p *Process) ResetPriority() {
	p.CurrentPriority = p.Priority
}

func (p *Process) String() string {
	return fmt.Sprintf("P%d[arrival=%d, burst=%d, priority=%d]", p.ID, p.ArrivalTime, p.BurstTime, p.Priority)
}
