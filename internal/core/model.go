package core

import (
	"errors"
	"fmt"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

const (
	DefaultQuantum   = 2
	DefaultAgingRate = 1
)

// TieBreakMode picks how the last, pseudo-random tie-break rule draws.
type TieBreakMode string

const (
	// TieBreakReseed draws once from a freshly seeded generator on every tie,
	// so identical ties always resolve to the same position.
	TieBreakReseed TieBreakMode = "reseed"
	// TieBreakStream draws successive values from one generator seeded per run.
	TieBreakStream TieBreakMode = "stream"
)

// Configuration is read-only for the duration of a run and may be shared
// between engines running concurrently.
type Configuration struct {
	Quantum   int          `json:"quantum" yaml:"quantum"`
	AgingRate int          `json:"aging" yaml:"aging"`
	TieBreak  TieBreakMode `json:"tie_break,omitempty" yaml:"tie_break,omitempty"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		Quantum:   DefaultQuantum,
		AgingRate: DefaultAgingRate,
		TieBreak:  TieBreakReseed,
	}
}

func (c Configuration) Validate() error {
	if c.Quantum <= 0 {
		return fmt.Errorf("%w: quantum must be positive, got %d", ErrInvalidConfiguration, c.Quantum)
	}
	if c.AgingRate <= 0 {
		return fmt.Errorf("%w: aging rate must be positive, got %d", ErrInvalidConfiguration, c.AgingRate)
	}
	switch c.TieBreak {
	case "", TieBreakReseed, TieBreakStream:
	default:
		return fmt.Errorf("%w: unknown tie-break mode %q", ErrInvalidConfiguration, c.TieBreak)
	}
	return nil
}

func (c Configuration) String() string {
	return fmt.Sprintf("Configuration[quantum=%d, aging=%d]", c.Quantum, c.AgingRate)
}

// TimelineEntry is a half-open interval [StartTime, EndTime) during which
// ProcessID held the cpu. ProcessStates lists every other arrived, incomplete
// process at the moment the interval closed.
type TimelineEntry struct {
	StartTime     int            `json:"start_time" yaml:"start_time"`
	EndTime       int            `json:"end_time" yaml:"end_time"`
	ProcessID     int            `json:"process_id" yaml:"process_id"`
	ProcessStates map[int]Status `json:"process_states" yaml:"process_states"`
}

type ProcessMetrics struct {
	ProcessID      int `json:"process_id" yaml:"process_id"`
	ArrivalTime    int `json:"arrival_time" yaml:"arrival_time"`
	BurstTime      int `json:"burst_time" yaml:"burst_time"`
	CompletionTime int `json:"completion_time" yaml:"completion_time"`
	TurnaroundTime int `json:"turnaround_time" yaml:"turnaround_time"`
	WaitingTime    int `json:"waiting_time" yaml:"waiting_time"`
	ResponseTime   int `json:"response_time" yaml:"response_time"`
}

type SchedulerResult struct {
	AlgorithmName         string                 `json:"algorithm_name" yaml:"algorithm_name"`
	AverageTurnaroundTime float64                `json:"average_turnaround_time" yaml:"average_turnaround_time"`
	AverageWaitingTime    float64                `json:"average_waiting_time" yaml:"average_waiting_time"`
	AverageResponseTime   float64                `json:"average_response_time" yaml:"average_response_time"`
	ContextSwitches       int                    `json:"context_switches" yaml:"context_switches"`
	Cpu                   CpuMetric              `json:"cpu" yaml:"cpu"`
	Timeline              []TimelineEntry        `json:"timeline" yaml:"timeline"`
	ProcessMetrics        map[int]ProcessMetrics `json:"process_metrics" yaml:"process_metrics"`
}
