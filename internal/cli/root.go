package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"taskflow-client/internal/config"
	"taskflow-client/internal/events"
	"taskflow-client/internal/pkg/logger"
	"taskflow-client/internal/tracer"
	"taskflow-client/internal/transport"

	"github.com/spf13/cobra"
)

type App struct {
	ApiURL      string
	Timeout     time.Duration
	LogFile     string
	MaxProjects int

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	cfg := config.Load()
	app := &App{cfg: cfg}

	cmd := &cobra.Command{
		Use:          "taskflow",
		Short:        "TaskFlow projects and tasks from the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive shell
  taskflow

  # Point at another server
  taskflow --api http://localhost:3000

  # Read the client's own log
  taskflow logs --level WARN --limit 20
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive shell.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runShell(cmd.Context(), app, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ApiURL, "api", cfg.Client.ApiURL, "Base URL of the TaskFlow server")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", cfg.Client.RequestTimeout, "Per-request timeout")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", cfg.App.LogFilePath, "JSON log file")
	cmd.PersistentFlags().IntVar(&app.MaxProjects, "max-projects", cfg.Client.MaxProjects, "Projects allowed per user")

	cmd.AddCommand(newShellCmd(app))
	cmd.AddCommand(newLogsCmd(app))

	return cmd
}

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runShell(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownTracer := tracer.InitTracer(app.cfg.Tracing, "taskflow-client")
	defer shutdownTracer(context.Background())

	sysLogger := logger.NewIsolatedLogger(app.LogFile)
	defer sysLogger.Sync()

	bus := events.NewBus(sysLogger)
	defer bus.Close()
	if err := journal(ctx, bus, sysLogger); err != nil {
		return err
	}

	client := transport.NewClient(app.ApiURL, app.Timeout, sysLogger)
	shell := NewShell(newRemoteBackend(client), bus, sysLogger, app.MaxProjects, out)

	sysLogger.Info(module, "Shell started", map[string]interface{}{"api": app.ApiURL})
	return shell.Run(ctx, in)
}
