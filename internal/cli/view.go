package cli

import (
	"github.com/spf13/cobra"

	"focusboard/internal/models"
	"focusboard/internal/view"
)

func newViewCmd(app *App) *cobra.Command {
	var (
		filter string
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the active board as status columns or as a flat list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := view.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(s *session) error {
				b := s.board.ActiveBoard()
				out := map[string]any{"board": b.Name, "filter": f}
				if list {
					out["tasks"] = view.List(b.Tasks, f)
				} else {
					out["columns"] = view.Columns(b.Tasks, f)
				}
				return writeOut(cmd, app, out)
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(view.FilterAll), "Category filter (all|quickWin|majorProject|fillIn|thankless)")
	cmd.Flags().BoolVar(&list, "list", false, "Show the flat list instead of columns")
	cmd.AddCommand(newViewCategoriesCmd(app))
	return cmd
}

type categoryRow struct {
	Category    models.Category `json:"category" yaml:"category"`
	Label       string          `json:"label" yaml:"label"`
	Description string          `json:"description" yaml:"description"`
}

func newViewCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the impact/effort categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([]categoryRow, 0, len(models.Categories))
			for _, c := range models.Categories {
				info := c.Info()
				rows = append(rows, categoryRow{Category: c, Label: info.Label, Description: info.Description})
			}
			return writeOut(cmd, app, rows)
		},
	}
}
