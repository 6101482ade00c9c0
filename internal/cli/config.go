package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"os-scheduler/internal/core"
	"os-scheduler/internal/schedulers"
)

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the stored quantum and aging rate",
	}
	cmd.AddCommand(newConfigGetCmd(e), newConfigSetCmd(e))
	return cmd
}

func newConfigGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the stored configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := e.configStore()
			writeConfiguration(cmd, st.Path(), st.Current())
			return nil
		},
	}
}

func newConfigSetCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Persist a new quantum, aging rate or tie-break mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := e.configStore()
			configuration := st.Current()
			if cmd.Flags().Changed("quantum") {
				configuration.Quantum = e.v.GetInt("quantum")
			}
			if cmd.Flags().Changed("aging") {
				configuration.AgingRate = e.v.GetInt("aging")
			}
			if cmd.Flags().Changed("tie-break") {
				configuration.TieBreak = core.TieBreakMode(strings.ToLower(e.v.GetString("tie-break")))
			}
			if err := st.Save(configuration); err != nil {
				return fmt.Errorf("save configuration: %w", err)
			}
			writeConfiguration(cmd, st.Path(), st.Current())
			return nil
		},
	}
	cmd.Flags().Int("quantum", core.DefaultQuantum, "Round-robin time slice")
	cmd.Flags().Int("aging", core.DefaultAgingRate, "Priority decrement per aging event")
	cmd.Flags().String("tie-break", string(core.TieBreakReseed), "Tie-break draw mode (reseed, stream)")
	return cmd
}

func writeConfiguration(cmd *cobra.Command, path string, configuration core.Configuration) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file:      %s\n", path)
	fmt.Fprintf(out, "quantum:   %d\n", configuration.Quantum)
	fmt.Fprintf(out, "aging:     %d\n", configuration.AgingRate)
	fmt.Fprintf(out, "tie_break: %s\n", configuration.TieBreak)
}

func newAlgorithmsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			configuration := e.configStore().Current()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-22s  %s\n", "KEY", "NAME")
			for _, alg := range schedulers.Algorithms() {
				engine, err := schedulers.New(alg, &configuration, e.logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-22s  %s\n", alg, engine.Name())
			}
			return nil
		},
	}
}
