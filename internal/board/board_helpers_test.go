package board

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"focusboard/internal/models"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestService(t *testing.T, st models.State) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(st, logger, WithIDGenerator(seqIDs()))
}

// fixture: boards A (active), B, C. A holds T1 (no subtasks), T2 (S1, S2 completed, S3), T3 (S4).
func fixture() models.State {
	return models.State{
		ActiveBoardID: "A",
		Boards: []models.Board{
			{
				ID:   "A",
				Name: "Alpha",
				Tasks: []models.Task{
					{ID: "T1", Title: "One", Status: models.StatusTodo, Effort: models.LevelLow, Impact: models.LevelHigh, Subtasks: []models.Subtask{}},
					{ID: "T2", Title: "Two", Status: models.StatusInProgress, Effort: models.LevelHigh, Impact: models.LevelHigh, Subtasks: []models.Subtask{
						{ID: "S1", Title: "Sub one", Description: "first", URL: "https://example.com/1"},
						{ID: "S2", Title: "Sub two", Completed: true},
						{ID: "S3", Title: "Sub three"},
					}},
					{ID: "T3", Title: "Three", Status: models.StatusDone, Effort: models.LevelLow, Impact: models.LevelLow, Subtasks: []models.Subtask{
						{ID: "S4", Title: "Sub four"},
					}},
				},
				Notes: "alpha notes",
			},
			{ID: "B", Name: "Beta", Tasks: []models.Task{}},
			{ID: "C", Name: "Gamma", Tasks: []models.Task{}},
		},
	}
}

func taskPayload(id string) Payload {
	return Payload{ID: id, Kind: KindTask}
}

func subtaskPayload(id, parentID string) Payload {
	return Payload{ID: id, Kind: KindSubtask, ParentID: parentID}
}

func boardPayload(id string) Payload {
	return Payload{ID: id, Kind: KindBoard}
}

func taskIDs(b models.Board) []string {
	out := make([]string, 0, len(b.Tasks))
	for _, t := range b.Tasks {
		out = append(out, t.ID)
	}
	return out
}

func subtaskIDs(t models.Task) []string {
	out := make([]string, 0, len(t.Subtasks))
	for _, s := range t.Subtasks {
		out = append(out, s.ID)
	}
	return out
}

func boardIDs(st models.State) []string {
	out := make([]string, 0, len(st.Boards))
	for _, b := range st.Boards {
		out = append(out, b.ID)
	}
	return out
}

func findTask(t *testing.T, b models.Board, id string) models.Task {
	t.Helper()
	i := b.TaskIndex(id)
	if i < 0 {
		t.Fatalf("task %s not found on board %s (tasks %v)", id, b.ID, taskIDs(b))
	}
	return b.Tasks[i]
}

func boardByID(t *testing.T, st models.State, id string) models.Board {
	t.Helper()
	i := st.BoardIndex(id)
	if i < 0 {
		t.Fatalf("board %s not found", id)
	}
	return st.Boards[i]
}
