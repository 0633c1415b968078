package cli

import (
	"github.com/spf13/cobra"

	"focusboard/internal/board"
	"focusboard/internal/models"
	"focusboard/internal/view"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands for the active board",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksStatusCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	return cmd
}

// draftFlags binds the task dialog fields to command flags.
type draftFlags struct {
	title, description, effort, impact, url string
}

func (f *draftFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.description, "description", "", "Task description")
	cmd.Flags().StringVar(&f.effort, "effort", "", "Effort (low|high)")
	cmd.Flags().StringVar(&f.impact, "impact", "", "Impact (low|high)")
	cmd.Flags().StringVar(&f.url, "url", "", "Related link")
}

// apply overlays the flags that were set onto the draft.
func (f *draftFlags) apply(cmd *cobra.Command, d models.TaskDraft) models.TaskDraft {
	changed := cmd.Flags().Changed
	if changed("title") {
		d.Title = f.title
	}
	if changed("description") {
		d.Description = f.description
	}
	if changed("effort") {
		d.Effort = models.Level(f.effort)
	}
	if changed("impact") {
		d.Impact = models.Level(f.impact)
	}
	if changed("url") {
		d.URL = f.url
	}
	return d
}

func newTasksListCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the active board's tasks with their category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := view.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(s *session) error {
				return writeOut(cmd, app, view.List(s.board.ActiveBoard().Tasks, f))
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(view.FilterAll), "Category filter (all|quickWin|majorProject|fillIn|thankless)")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				t, ok := s.board.Task(args[0])
				if !ok {
					return board.NotFoundError{Kind: "task", ID: args[0]}
				}
				return writeOut(cmd, app, t)
			})
		},
	}
}

func newTasksAddCmd(app *App) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to the To Do column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := flags.apply(cmd, models.TaskDraft{}).Validate()
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(s *session) error {
				t, err := s.board.AddTask(draft)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	flags.bind(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit a task's fields; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				cur, ok := s.board.Task(args[0])
				if !ok {
					return board.NotFoundError{Kind: "task", ID: args[0]}
				}
				draft, err := flags.apply(cmd, models.DraftFromTask(cur)).Validate()
				if err != nil {
					return err
				}
				t, err := s.board.UpdateTask(args[0], draft)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}

	flags.bind(cmd)
	return cmd
}

func newTasksStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <task-id> <todo|inprogress|done>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := models.ParseStatus(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(s *session) error {
				t, err := s.board.SetTaskStatus(args[0], status)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, t)
			})
		},
	}
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task and its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				if err := s.board.DeleteTask(cmd.Context(), args[0], confirmer(cmd, app)); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"deleted": args[0]})
			})
		},
	}
}
