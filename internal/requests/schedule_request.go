package requests

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"os-scheduler/internal/core"
)

var ErrNoValidProcesses = errors.New("no valid process provided")

// ScheduleRequest carries a free-text process list, one
// "arrival burst priority" triple per line. Quantum and Aging override the
// stored defaults when both are positive.
type ScheduleRequest struct {
	ProcessInput string `json:"process_input"`
	Quantum      int    `json:"quantum"`
	Aging        int    `json:"aging"`
}

type ConfigRequest struct {
	Quantum  int    `json:"quantum"`
	Aging    int    `json:"aging"`
	TieBreak string `json:"tie_break,omitempty"`
}

// HasConfiguration reports whether the request overrides quantum and aging.
func (r ScheduleRequest) HasConfiguration() bool {
	return r.Quantum > 0 && r.Aging > 0
}

// Processes parses ProcessInput and fails when no line is usable.
func (r ScheduleRequest) Processes(logger *slog.Logger) ([]*core.Process, error) {
	processes := ParseProcesses(r.ProcessInput, logger)
	if len(processes) == 0 {
		return nil, ErrNoValidProcesses
	}
	return processes, nil
}

// ParseProcesses turns each well-formed line into a process. Ids are assigned
// from 1 in the order lines are accepted. Malformed lines are logged and
// skipped.
func ParseProcesses(input string, logger *slog.Logger) []*core.Process {
	processes := make([]*core.Process, 0)
	nextID := 1
	for number, line := range strings.Split(strings.TrimSpace(input), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		arrival, burst, priority, err := parseLine(line)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping process line", "line", number+1, "input", line, "error", err)
			}
			continue
		}
		processes = append(processes, core.NewProcess(nextID, arrival, burst, priority))
		nextID++
	}
	return processes
}

func parseLine(line string) (arrival, burst, priority int, err error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, 0, fmt.Errorf("expected arrival, burst and priority, got %d fields", len(fields))
	}
	values := make([]int, 3)
	for i, field := range fields[:3] {
		values[i], err = strconv.Atoi(field)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("field %d: %w", i+1, err)
		}
	}
	arrival, burst, priority = values[0], values[1], values[2]
	switch {
	case arrival < 0:
		return 0, 0, 0, fmt.Errorf("arrival time must not be negative, got %d", arrival)
	case burst <= 0:
		return 0, 0, 0, fmt.Errorf("burst time must be positive, got %d", burst)
	case priority < 1:
		return 0, 0, 0, fmt.Errorf("priority must be at least 1, got %d", priority)
	}
	return arrival, burst, priority, nil
}
