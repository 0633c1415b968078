// Package cli implements the focusboard command tree.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"focusboard/internal/config"
	"focusboard/internal/format"
)

// App carries the resolved flags and configuration shared by every command.
type App struct {
	ConfigPath string
	Backend    string
	DBPath     string
	Format     string
	Pretty     bool
	Yes        bool

	cfg    config.Config
	logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "focusboard",
		Short:         "Kanban board with an impact/effort matrix",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Serve the API and the board UI
  focusboard serve --addr :8080

  # Add a task to the active board
  focusboard tasks add --title "Write release notes" --impact high

  # Move a subtask out of its parent into the In Progress column
  focusboard drop '{"id":"<subtask-id>","type":"subtask","parentId":"<task-id>"}' --on column --target inprogress
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to a YAML config file (default: ./focusboard.yaml when present)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Storage backend (sqlite|redis|memory)")
	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "Path to the sqlite database file")
	cmd.PersistentFlags().StringVar(&app.Format, "format", format.JSON, "Output format (json|yaml)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVarP(&app.Yes, "yes", "y", false, "Skip confirmation prompts")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newSubtasksCmd(app))
	cmd.AddCommand(newDropCmd(app))
	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newNotesCmd(app))

	return cmd
}

// setup resolves the configuration and applies flag overrides on top of it.
func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return writeErr(cmd, err)
	}
	if app.Backend != "" {
		cfg.Storage.Backend = app.Backend
	}
	if app.DBPath != "" {
		cfg.Storage.Path = app.DBPath
	}
	if err := cfg.Validate(); err != nil {
		return writeErr(cmd, err)
	}
	switch app.Format {
	case format.JSON, format.YAML, "yml":
	default:
		return writeErr(cmd, fmt.Errorf("unknown format: %s", app.Format))
	}

	app.cfg = cfg
	app.logger = cfg.Log.NewLogger(cmd.ErrOrStderr())
	return nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "error:", err.Error())
	return err
}
