package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"os-scheduler/api"
	"os-scheduler/config"
	"os-scheduler/internal/store"
)

func newServeCmd(e *env) *cobra.Command {
	defaults := config.DefaultServerConfig()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, e)
		},
	}
	cmd.Flags().Int("port", defaults.Port, "Listen port (or SCHEDSIM_PORT env)")
	cmd.Flags().String("db", defaults.DBPath, "SQLite run history path, empty to disable (or SCHEDSIM_DB env)")
	cmd.Flags().Bool("trace", defaults.Trace, "Export OpenTelemetry spans to stderr")
	return cmd
}

func serve(ctx context.Context, e *env) error {
	settings := e.settings()

	if settings.Trace {
		shutdown, err := setupTracing(os.Stderr)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	var history store.Store
	if settings.DBPath != "" {
		st, err := store.NewSQLiteStore(settings.DBPath, e.logger)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}
		history = st
	}

	handler := api.NewSchedulerHandlerImpl(e.configStore(), history, e.logger)
	app := api.NewApp(handler)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", settings.Port)
		e.logger.Info("listening", "addr", addr, "db", settings.DBPath, "config", settings.ConfigFile)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		e.logger.Info("shutting down")
		return app.ShutdownWithTimeout(5 * time.Second)
	}
}
