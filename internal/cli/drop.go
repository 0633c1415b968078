package cli

import (
	"io"

	"github.com/spf13/cobra"

	"focusboard/internal/board"
)

func newDropCmd(app *App) *cobra.Command {
	var (
		kind   string
		target string
		index  int
	)

	cmd := &cobra.Command{
		Use:   "drop <payload|->",
		Short: "Apply a drag-and-drop gesture to the active board",
		Long: `Apply a drag payload such as {"id":"...","type":"task|subtask|board","parentId":"..."}
to a drop target. Use - to read the payload from stdin.

Targets:
  column   --target todo|inprogress|done
  task     --target <task-id>
  subtask  --target <parent-task-id> --index <position>
  board    --target <board-id>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(args[0])
			if args[0] == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				raw = b
			}
			t := board.Target{Kind: board.TargetKind(kind), ID: target, Index: index}
			return withSession(cmd, app, func(s *session) error {
				applied, err := s.board.Drop(raw, t)
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{
					"applied":       applied,
					"activeBoardId": s.board.Snapshot().ActiveBoardID,
				})
			})
		},
	}

	cmd.Flags().StringVar(&kind, "on", "", "Target kind (column|task|subtask|board)")
	cmd.Flags().StringVar(&target, "target", "", "Target identifier")
	cmd.Flags().IntVar(&index, "index", 0, "Insertion index for subtask targets")
	_ = cmd.MarkFlagRequired("on")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
