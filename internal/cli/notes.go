package cli

import (
	"io"

	"github.com/spf13/cobra"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Read or replace the active board's notes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				return writeOut(cmd, app, s.board.ActiveBoard().Notes)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <text|->",
		Short: "Replace the notes; - reads them from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			if text == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				text = string(b)
			}
			return withSession(cmd, app, func(s *session) error {
				if err := s.board.SetNotes(text); err != nil {
					return err
				}
				return writeOut(cmd, app, s.board.ActiveBoard().Notes)
			})
		},
	})
	return cmd
}
