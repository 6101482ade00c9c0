package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"os-scheduler/config"
	"os-scheduler/internal/logging"
)

// env is shared by every subcommand of one root command.
type env struct {
	v      *viper.Viper
	logger *slog.Logger
}

func (e *env) settings() config.ServerConfig {
	return config.ServerConfigFrom(e.v)
}

// configStore opens the simulation defaults file and loads it.
func (e *env) configStore() *config.Store {
	st := config.NewStore(e.settings().ConfigFile, e.logger)
	st.Load()
	return st
}

// NewRootCmd creates the root cobra command for the schedsim cli.
func NewRootCmd() *cobra.Command {
	e := &env{v: config.NewViper(), logger: logging.Discard()}
	defaults := config.DefaultServerConfig()

	root := &cobra.Command{
		Use:   "schedsim",
		Short: "CPU scheduling simulator",
		Long:  "schedsim simulates FCFS, SJF, SRTF, priority and round-robin scheduling over a process list and reports per-process and aggregate metrics.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := e.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			level := e.v.GetString("log-level")
			if e.v.GetBool("debug") {
				level = "debug"
			}
			e.logger = logging.NewLoggerWithWriter(logging.ParseLevel(level), e.v.GetString("log-format"), cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", defaults.ConfigFile, "Simulation defaults file (quantum, aging)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	flags.String("log-format", defaults.LogFormat, "Log format (text, json)")

	root.AddCommand(
		newServeCmd(e),
		newRunCmd(e),
		newConfigCmd(e),
		newAlgorithmsCmd(e),
	)

	return root
}
