package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"os-scheduler/internal/core"
	"os-scheduler/internal/schedulers"
)

func writeSummary(w io.Writer, results []*core.SchedulerResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Avg Turnaround", "Avg Waiting", "Avg Response", "Context Switches", "Total Time", "Utilization"})
	table.SetAutoWrapText(false)
	for _, result := range results {
		table.Append([]string{
			result.AlgorithmName,
			fmt.Sprintf("%.2f", result.AverageTurnaroundTime),
			fmt.Sprintf("%.2f", result.AverageWaitingTime),
			fmt.Sprintf("%.2f", result.AverageResponseTime),
			fmt.Sprint(result.ContextSwitches),
			fmt.Sprint(result.Cpu.TotalTime),
			fmt.Sprintf("%.0f%%", result.Cpu.Utilization*100),
		})
	}
	table.Render()
}

func writeDetails(w io.Writer, result *core.SchedulerResult) error {
	fmt.Fprintf(w, "\n%s\n", result.AlgorithmName)

	ids := make([]int, 0, len(result.ProcessMetrics))
	for id := range result.ProcessMetrics {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Exit", "Turnaround", "Wait", "Response"})
	for _, id := range ids {
		m := result.ProcessMetrics[id]
		table.Append([]string{
			fmt.Sprintf("P%d", m.ProcessID),
			fmt.Sprint(m.ArrivalTime),
			fmt.Sprint(m.BurstTime),
			fmt.Sprint(m.CompletionTime),
			fmt.Sprint(m.TurnaroundTime),
			fmt.Sprint(m.WaitingTime),
			fmt.Sprint(m.ResponseTime),
		})
	}
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average %.2f", result.AverageTurnaroundTime),
		fmt.Sprintf("Average %.2f", result.AverageWaitingTime),
		fmt.Sprintf("Average %.2f", result.AverageResponseTime)})
	table.Render()

	return schedulers.RenderTimeline(w, result)
}
