package schedulers

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"os-scheduler/internal/core"
	"os-scheduler/internal/logging"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrNoProcesses      = errors.New("no processes to schedule")
	ErrInvalidProcess   = errors.New("invalid process")
)

type Algorithm string

const (
	FCFS               Algorithm = "FCFS"
	SJF                Algorithm = "SJF"
	SRTF               Algorithm = "SRTF"
	Priority           Algorithm = "PRIORITY"
	PriorityPreemptive Algorithm = "PRIORITY_PREEMPTIVE"
	RoundRobin         Algorithm = "ROUND_ROBIN"
	RoundRobinPriority Algorithm = "ROUND_ROBIN_PRIORITY"
)

// Algorithms lists every engine in report order.
func Algorithms() []Algorithm {
	return []Algorithm{FCFS, SJF, SRTF, Priority, PriorityPreemptive, RoundRobin, RoundRobinPriority}
}

func ParseAlgorithm(key string) (Algorithm, error) {
	alg := Algorithm(strings.ToUpper(strings.TrimSpace(key)))
	for _, known := range Algorithms() {
		if alg == known {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownAlgorithm, key)
}

// Scheduler simulates one algorithm over a process set. Schedule never
// mutates its input.
type Scheduler interface {
	Name() string
	Schedule(processes []*core.Process) *core.SchedulerResult
}

// New builds the engine for alg. The configuration is held by reference and
// must not change while the engine runs.
func New(alg Algorithm, config *core.Configuration, logger *slog.Logger) (Scheduler, error) {
	if config == nil {
		defaults := core.DefaultConfiguration()
		config = &defaults
	}
	if logger == nil {
		logger = logging.Discard()
	}
	b := base{config: config, logger: logger}

	switch alg {
	case FCFS:
		return &FirstComeFirstServe{b}, nil
	case SJF:
		return &ShortestJobFirst{b}, nil
	case SRTF:
		return &ShortestRemainingTimeFirst{b}, nil
	case Priority:
		return &PriorityNonPreemptive{b}, nil
	case PriorityPreemptive:
		return &PriorityWithPreemption{b}, nil
	case RoundRobin:
		return &RoundRobinScheduler{b}, nil
	case RoundRobinPriority:
		return &RoundRobinAging{b}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, alg)
	}
}

type base struct {
	config *core.Configuration
	logger *slog.Logger
}

func (b base) tieBreaker() *TieBreaker {
	return NewTieBreaker(b.config.TieBreak)
}

// simulate runs policy over a private copy of processes and derives the result.
func (b base) simulate(name string, processes []*core.Process, policy core.Policy) *core.SchedulerResult {
	working := core.CloneAll(processes)
	trace := core.CpuExecute(working, policy, b.logger.With("algorithm", name))
	return generateResponse(name, working, trace)
}
