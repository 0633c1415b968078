package cli

import (
	"github.com/spf13/cobra"
)

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Board commands",
	}
	cmd.AddCommand(newBoardsListCmd(app))
	cmd.AddCommand(newBoardsCreateCmd(app))
	cmd.AddCommand(newBoardsRenameCmd(app))
	cmd.AddCommand(newBoardsUseCmd(app))
	cmd.AddCommand(newBoardsDeleteCmd(app))
	return cmd
}

type boardSummary struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Tasks  int    `json:"tasks" yaml:"tasks"`
	Active bool   `json:"active" yaml:"active"`
}

func newBoardsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				st := s.board.Snapshot()
				out := make([]boardSummary, 0, len(st.Boards))
				for _, b := range st.Boards {
					out = append(out, boardSummary{ID: b.ID, Name: b.Name, Tasks: len(b.Tasks), Active: b.ID == st.ActiveBoardID})
				}
				return writeOut(cmd, app, out)
			})
		},
	}
}

func newBoardsCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board and switch to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				b, err := s.board.CreateBoard(name)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, b)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name (default \"New Board\")")
	return cmd
}

func newBoardsRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <board-id>",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				b, err := s.board.RenameBoard(args[0], name)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, b)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New board name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newBoardsUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <board-id>",
		Short: "Make a board the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				if err := s.board.SetActiveBoard(args[0]); err != nil {
					return err
				}
				return writeOut(cmd, app, s.board.ActiveBoard())
			})
		},
	}
}

func newBoardsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a board and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				if err := s.board.DeleteBoard(cmd.Context(), args[0], confirmer(cmd, app)); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{
					"deleted":       args[0],
					"activeBoardId": s.board.Snapshot().ActiveBoardID,
				})
			})
		},
	}
}
