package board

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"focusboard/internal/models"
)

func TestNew_NormalizesState(t *testing.T) {
	svc := newTestService(t, models.State{})
	st := svc.Snapshot()
	if len(st.Boards) != 1 || st.Boards[0].Name != DefaultBoardName {
		t.Fatalf("expected one default board, got %+v", st.Boards)
	}
	if st.ActiveBoardID != st.Boards[0].ID {
		t.Fatalf("active board = %q, want %q", st.ActiveBoardID, st.Boards[0].ID)
	}

	in := fixture()
	in.ActiveBoardID = "gone"
	in.Boards[1].Tasks = []models.Task{{ID: "X", Title: "legacy"}}
	svc = newTestService(t, in)
	st = svc.Snapshot()
	if st.ActiveBoardID != "A" {
		t.Fatalf("active fallback = %q, want A", st.ActiveBoardID)
	}
	if st.Boards[1].Tasks[0].Subtasks == nil {
		t.Fatalf("nil subtasks not normalized")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	svc := newTestService(t, fixture())
	st := svc.Snapshot()
	st.Boards[0].Tasks[0].Title = "mutated"
	st.Boards = nil

	if got := svc.ActiveBoard().Tasks[0].Title; got != "One" {
		t.Fatalf("snapshot mutation leaked into service: %q", got)
	}
}

func TestSubscribe_PublishesOnlyChanges(t *testing.T) {
	svc := newTestService(t, fixture())
	var got []models.State
	cancel := svc.Subscribe(func(st models.State) { got = append(got, st) })

	svc.DropOnColumn(taskPayload("T1"), models.StatusDone)
	svc.DropOnColumn(taskPayload("T1"), models.StatusDone) // no-op
	if len(got) != 1 {
		t.Fatalf("published %d snapshots, want 1", len(got))
	}
	if got[0].Boards[0].Tasks[0].Status != models.StatusDone {
		t.Fatalf("published stale snapshot")
	}

	cancel()
	svc.DropOnColumn(taskPayload("T1"), models.StatusTodo)
	if len(got) != 1 {
		t.Fatalf("cancelled subscriber still called")
	}
}

func TestCreateBoard(t *testing.T) {
	svc := newTestService(t, fixture())

	b, err := svc.CreateBoard("  ")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	if b.Name != NewBoardName || len(b.Tasks) != 0 || b.Notes != "" {
		t.Fatalf("unexpected board: %+v", b)
	}
	st := svc.Snapshot()
	if st.ActiveBoardID != b.ID {
		t.Fatalf("new board not active")
	}
	if got := boardIDs(st); got[len(got)-1] != b.ID {
		t.Fatalf("new board not appended: %v", got)
	}
}

func TestRenameBoard(t *testing.T) {
	svc := newTestService(t, fixture())

	b, err := svc.RenameBoard("B", "Backlog")
	if err != nil {
		t.Fatalf("RenameBoard: %v", err)
	}
	if b.Name != "Backlog" || boardByID(t, svc.Snapshot(), "B").Name != "Backlog" {
		t.Fatalf("rename not applied")
	}
	if _, err := svc.RenameBoard("B", " "); !errors.Is(err, ErrEmptyBoardName) {
		t.Fatalf("expected ErrEmptyBoardName, got %v", err)
	}
	if _, err := svc.RenameBoard("missing", "x"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteBoard_LastBoardIsRejected(t *testing.T) {
	svc := newTestService(t, models.State{})
	id := svc.Snapshot().Boards[0].ID

	err := svc.DeleteBoard(context.Background(), id, Confirmed(true))
	if !errors.Is(err, ErrLastBoard) {
		t.Fatalf("expected ErrLastBoard, got %v", err)
	}
	if n := len(svc.Snapshot().Boards); n != 1 {
		t.Fatalf("boards = %d, want 1", n)
	}
}

func TestDeleteBoard_RequiresConfirmation(t *testing.T) {
	svc := newTestService(t, fixture())
	var prompt Prompt
	declined := ConfirmFunc(func(_ context.Context, p Prompt) bool {
		prompt = p
		return false
	})

	if err := svc.DeleteBoard(context.Background(), "B", declined); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if prompt.Title == "" || prompt.Message == "" {
		t.Fatalf("confirmer not asked: %+v", prompt)
	}
	if err := svc.DeleteBoard(context.Background(), "B", nil); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("nil confirmer should decline, got %v", err)
	}
	if n := len(svc.Snapshot().Boards); n != 3 {
		t.Fatalf("boards = %d, want 3", n)
	}
}

func TestDeleteBoard_ActiveFallsBackToFirst(t *testing.T) {
	st := fixture()
	st.ActiveBoardID = "C"
	svc := newTestService(t, st)

	if err := svc.DeleteBoard(context.Background(), "C", Confirmed(true)); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}
	got := svc.Snapshot()
	if !reflect.DeepEqual(boardIDs(got), []string{"A", "B"}) {
		t.Fatalf("boards = %v", boardIDs(got))
	}
	if got.ActiveBoardID != "A" {
		t.Fatalf("active = %q, want A", got.ActiveBoardID)
	}

	if err := svc.DeleteBoard(context.Background(), "B", Confirmed(true)); err != nil {
		t.Fatalf("DeleteBoard inactive: %v", err)
	}
	if svc.Snapshot().ActiveBoardID != "A" {
		t.Fatalf("deleting an inactive board changed the active one")
	}
	if err := svc.DeleteBoard(context.Background(), "zzz", Confirmed(true)); !errors.Is(err, ErrLastBoard) {
		t.Fatalf("expected ErrLastBoard with one board left, got %v", err)
	}
}

func TestSetActiveBoard(t *testing.T) {
	svc := newTestService(t, fixture())
	if err := svc.SetActiveBoard("B"); err != nil {
		t.Fatalf("SetActiveBoard: %v", err)
	}
	if svc.ActiveBoard().ID != "B" {
		t.Fatalf("active board not switched")
	}
	if err := svc.SetActiveBoard("nope"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddAndUpdateTask(t *testing.T) {
	svc := newTestService(t, fixture())

	task, err := svc.AddTask(models.TaskDraft{Title: "Ship it", Impact: models.LevelHigh})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.ID != "id-1" || task.Status != models.StatusTodo || task.Effort != models.LevelLow || len(task.Subtasks) != 0 {
		t.Fatalf("unexpected task: %+v", task)
	}
	if got := taskIDs(svc.ActiveBoard()); got[len(got)-1] != task.ID {
		t.Fatalf("task not appended: %v", got)
	}

	updated, err := svc.UpdateTask("T2", models.TaskDraft{Title: "Two again", Effort: models.LevelLow, Impact: models.LevelHigh, URL: "https://x"})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Status != models.StatusInProgress || len(updated.Subtasks) != 3 {
		t.Fatalf("update clobbered status or subtasks: %+v", updated)
	}
	if updated.Category() != models.CategoryQuickWin {
		t.Fatalf("category = %q, want quickWin", updated.Category())
	}
	if _, err := svc.UpdateTask("missing", models.TaskDraft{Title: "x"}); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	svc := newTestService(t, fixture())
	ctx := context.Background()

	if err := svc.DeleteTask(ctx, "T2", Confirmed(false)); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if err := svc.DeleteTask(ctx, "T2", Confirmed(true)); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if got := taskIDs(svc.ActiveBoard()); !reflect.DeepEqual(got, []string{"T1", "T3"}) {
		t.Fatalf("tasks = %v", got)
	}
	if err := svc.DeleteTask(ctx, "T2", Confirmed(true)); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetTaskStatus(t *testing.T) {
	svc := newTestService(t, fixture())
	task, err := svc.SetTaskStatus("T1", models.StatusInProgress)
	if err != nil || task.Status != models.StatusInProgress {
		t.Fatalf("SetTaskStatus: %+v, %v", task, err)
	}
	if _, err := svc.SetTaskStatus("T1", "blocked"); !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.SetTaskStatus("missing", models.StatusDone); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSubtaskEdits(t *testing.T) {
	svc := newTestService(t, fixture())

	sub, err := svc.ToggleSubtask("T2", "S1")
	if err != nil || !sub.Completed {
		t.Fatalf("ToggleSubtask: %+v, %v", sub, err)
	}
	if got := findTask(t, svc.ActiveBoard(), "T2").Status; got != models.StatusInProgress {
		t.Fatalf("toggle changed parent status to %q", got)
	}

	sub, err = svc.SetSubtaskDescription("T2", "S1", "updated")
	if err != nil || sub.Description != "updated" {
		t.Fatalf("SetSubtaskDescription: %+v, %v", sub, err)
	}
	if _, err := svc.ToggleSubtask("T2", "S4"); !IsNotFound(err) {
		t.Fatalf("expected subtask not found, got %v", err)
	}
	if _, err := svc.ToggleSubtask("T9", "S1"); !IsNotFound(err) {
		t.Fatalf("expected task not found, got %v", err)
	}
}

func TestSetNotes(t *testing.T) {
	svc := newTestService(t, fixture())
	published := 0
	svc.Subscribe(func(models.State) { published++ })

	if err := svc.SetNotes("new notes"); err != nil {
		t.Fatalf("SetNotes: %v", err)
	}
	if err := svc.SetNotes("new notes"); err != nil {
		t.Fatalf("SetNotes: %v", err)
	}
	if svc.ActiveBoard().Notes != "new notes" {
		t.Fatalf("notes not saved")
	}
	if published != 1 {
		t.Fatalf("published %d, want 1", published)
	}
	if boardByID(t, svc.Snapshot(), "B").Notes != "" {
		t.Fatalf("notes leaked to another board")
	}
}
