package util

import "os-scheduler/internal/core"

func CalculateAverage(processMetrics []core.ProcessMetrics) (averageWaitingTime, averageResponseTime, averageTurnaroundTime float64) {
	if len(processMetrics) == 0 {
		return
	}

	var waitingTimeSum float64
	var responseTimeSum float64
	var turnaroundTimeSum float64

	for _, metrics := range processMetrics {
		waitingTimeSum += float64(metrics.WaitingTime)
		responseTimeSum += float64(metrics.ResponseTime)
		turnaroundTimeSum += float64(metrics.TurnaroundTime)
	}

	processCount := float64(len(processMetrics))

	averageWaitingTime = waitingTimeSum / processCount
	averageResponseTime = responseTimeSum / processCount
	averageTurnaroundTime = turnaroundTimeSum / processCount
	return
}
