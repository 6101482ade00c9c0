package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"os-scheduler/internal/core"
	"os-scheduler/internal/requests"
	"os-scheduler/internal/schedulers"
)

func newRunCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Simulate a process list",
		Long: `Simulate a process list read from file, or stdin when file is "-" or omitted.
Each line holds "arrival burst priority"; malformed lines are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			processes := requests.ParseProcesses(input, e.logger)
			if len(processes) == 0 {
				return requests.ErrNoValidProcesses
			}

			configuration := e.configStore().Current()
			if quantum := e.v.GetInt("quantum"); quantum != 0 {
				configuration.Quantum = quantum
			}
			if aging := e.v.GetInt("aging"); aging != 0 {
				configuration.AgingRate = aging
			}
			if mode := e.v.GetString("tie-break"); mode != "" {
				configuration.TieBreak = core.TieBreakMode(strings.ToLower(mode))
			}
			if err := configuration.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if key := e.v.GetString("algorithm"); key != "" {
				result, err := schedulers.RunScheduler(cmd.Context(), key, processes, &configuration, e.logger)
				if err != nil {
					return err
				}
				return writeResults(out, e.v.GetString("format"), e.v.GetBool("details"), result, []*core.SchedulerResult{result})
			}

			results, err := schedulers.RunAllSchedulers(cmd.Context(), processes, &configuration, e.logger)
			if err != nil {
				return err
			}
			return writeResults(out, e.v.GetString("format"), e.v.GetBool("details"), results, results.Results())
		},
	}
	cmd.Flags().StringP("algorithm", "a", "", "Run a single algorithm (FCFS, SJF, SRTF, PRIORITY, PRIORITY_PREEMPTIVE, ROUND_ROBIN, ROUND_ROBIN_PRIORITY)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json, yaml)")
	cmd.Flags().Bool("details", false, "Print per-process metrics and the timeline diagram (table format)")
	cmd.Flags().Int("quantum", 0, "Override the stored quantum for this run")
	cmd.Flags().Int("aging", 0, "Override the stored aging rate for this run")
	cmd.Flags().String("tie-break", "", "Tie-break draw mode (reseed, stream)")
	return cmd
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// writeResults encodes document as json or yaml, or renders results as tables.
func writeResults(w io.Writer, format string, details bool, document any, results []*core.SchedulerResult) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		writeSummary(w, results)
		if !details {
			return nil
		}
		for _, result := range results {
			if err := writeDetails(w, result); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
