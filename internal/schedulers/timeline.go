package schedulers

import (
	"bufio"
	"fmt"
	"io"

	"os-scheduler/internal/core"
)

const (
	runningMark = "##"
	waitingMark = "--"
)

// RenderTimeline writes the text diagram of a result: one column per process
// id, one row per timeline entry, ## for the running process and -- for the
// processes waiting when the entry closed.
func RenderTimeline(w io.Writer, result *core.SchedulerResult) error {
	bw := bufio.NewWriter(w)
	if result == nil || len(result.Timeline) == 0 {
		fmt.Fprintln(bw, "no execution recorded")
		return bw.Flush()
	}

	maxProcessID, maxTime := 0, 0
	for _, entry := range result.Timeline {
		maxProcessID = max(maxProcessID, entry.ProcessID)
		maxTime = max(maxTime, entry.EndTime)
	}
	// "start-end" plus three spaces, at least as wide as " 0- 0"
	timeWidth := max(2, digits(maxTime))
	labelWidth := 2*timeWidth + 4
	// each cell is a space and a left-aligned mark, at least as wide as "P999"
	cellWidth := max(4, 1+digits(maxProcessID))

	fmt.Fprintf(bw, "%-*s", labelWidth, "time")
	for id := 1; id <= maxProcessID; id++ {
		fmt.Fprintf(bw, " %-*s", cellWidth, fmt.Sprintf("P%d", id))
	}
	fmt.Fprintln(bw)

	for _, entry := range result.Timeline {
		fmt.Fprintf(bw, "%*d-%*d   ", timeWidth, entry.StartTime, timeWidth, entry.EndTime)
		for id := 1; id <= maxProcessID; id++ {
			mark := ""
			switch {
			case id == entry.ProcessID:
				mark = runningMark
			case entry.ProcessStates[id] == core.StatusWaiting:
				mark = waitingMark
			}
			fmt.Fprintf(bw, " %-*s", cellWidth, mark)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
