package cli

import (
	"github.com/spf13/cobra"
)

func newSubtasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtasks",
		Short: "Subtask commands",
	}
	cmd.AddCommand(newSubtasksToggleCmd(app))
	cmd.AddCommand(newSubtasksDescribeCmd(app))
	return cmd
}

func newSubtasksToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id> <subtask-id>",
		Short: "Flip a subtask's completion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				sub, err := s.board.ToggleSubtask(args[0], args[1])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, sub)
			})
		},
	}
}

func newSubtasksDescribeCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "describe <task-id> <subtask-id>",
		Short: "Set a subtask's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				sub, err := s.board.SetSubtaskDescription(args[0], args[1], text)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, sub)
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Description text (empty clears it)")
	return cmd
}
