package schedulers

import (
	"os-scheduler/internal/core"
	"os-scheduler/internal/util"
)

// generateResponse derives per-process and aggregate metrics from a finished
// trace. Every process must already be completed.
func generateResponse(name string, processes []*core.Process, trace core.Trace) *core.SchedulerResult {
	details := make([]core.ProcessMetrics, 0, len(processes))
	metricsByID := make(map[int]core.ProcessMetrics, len(processes))
	for _, p := range processes {
		metrics := generateProcessDetails(p)
		details = append(details, metrics)
		metricsByID[p.ID] = metrics
	}

	averageWaitingTime, averageResponseTime, averageTurnaroundTime := util.CalculateAverage(details)
	return &core.SchedulerResult{
		AlgorithmName:         name,
		AverageTurnaroundTime: averageTurnaroundTime,
		AverageWaitingTime:    averageWaitingTime,
		AverageResponseTime:   averageResponseTime,
		ContextSwitches:       trace.ContextSwitches,
		Cpu:                   trace.Cpu,
		Timeline:              trace.Timeline,
		ProcessMetrics:        metricsByID,
	}
}

func generateProcessDetails(p *core.Process) core.ProcessMetrics {
	turnaroundTime := p.CompletionTime - p.ArrivalTime
	return core.ProcessMetrics{
		ProcessID:      p.ID,
		ArrivalTime:    p.ArrivalTime,
		BurstTime:      p.BurstTime,
		CompletionTime: p.CompletionTime,
		TurnaroundTime: turnaroundTime,
		WaitingTime:    turnaroundTime - p.BurstTime,
		ResponseTime:   p.ResponseTime,
	}
}
