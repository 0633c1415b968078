// Package board owns the FocusBoard state: the ordered boards, the active board's tasks and
// their subtasks, and every operation that changes them.
//
// The Service is copy-on-write. Each mutation clones the current snapshot, edits the clone and
// swaps it in whole, so readers always observe either the previous or the next state. Successful
// mutations are published to subscribers; no-ops are not.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"focusboard/internal/models"
)

const (
	// DefaultBoardName names the board synthesized on first start and by legacy migration.
	DefaultBoardName = "Main Board"
	// NewBoardName is used when a board is created without a name.
	NewBoardName = "New Board"
)

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator replaces the UUID generator used for new boards and tasks.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

type subscriber struct {
	id int
	fn func(models.State)
}

// Service is the process-wide state container.
type Service struct {
	mu      sync.Mutex // serializes writers and subscriber delivery
	state   atomic.Pointer[models.State]
	subs    []subscriber
	nextSub int
	logger  *slog.Logger
	newID   func() string
}

// New takes ownership of a copy of the initial state. An empty state gets a default board and
// an unknown active id falls back to the first board.
func New(initial models.State, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{logger: logger, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}

	st := initial.Clone()
	if len(st.Boards) == 0 {
		st.Boards = []models.Board{s.emptyBoard(DefaultBoardName)}
	}
	if st.BoardIndex(st.ActiveBoardID) < 0 {
		st.ActiveBoardID = st.Boards[0].ID
	}
	for i := range st.Boards {
		for j := range st.Boards[i].Tasks {
			if st.Boards[i].Tasks[j].Subtasks == nil {
				st.Boards[i].Tasks[j].Subtasks = []models.Subtask{}
			}
		}
	}
	s.state.Store(&st)
	return s
}

func (s *Service) emptyBoard(name string) models.Board {
	return models.Board{ID: s.newID(), Name: name, Tasks: []models.Task{}}
}

// Snapshot returns a deep copy of the current state.
func (s *Service) Snapshot() models.State {
	return s.state.Load().Clone()
}

// ActiveBoard returns a copy of the active board.
func (s *Service) ActiveBoard() models.Board {
	st := s.state.Load()
	return st.Boards[st.BoardIndex(st.ActiveBoardID)].Clone()
}

// Task looks up a task on the active board.
func (s *Service) Task(id string) (models.Task, bool) {
	b := s.ActiveBoard()
	i := b.TaskIndex(id)
	if i < 0 {
		return models.Task{}, false
	}
	return b.Tasks[i], true
}

// Subscribe registers fn to receive every new snapshot. Subscribers run synchronously after the
// swap, in registration order, and must not mutate the service from inside the callback.
func (s *Service) Subscribe(fn func(models.State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// update applies fn to a clone of the current state and publishes it when fn reports a change.
func (s *Service) update(fn func(st *models.State) (bool, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Load().Clone()
	changed, err := fn(&next)
	if err != nil || !changed {
		return false, err
	}
	s.state.Store(&next)
	for _, sub := range s.subs {
		sub.fn(next.Clone())
	}
	return true, nil
}

func activeBoard(st *models.State) *models.Board {
	return &st.Boards[st.BoardIndex(st.ActiveBoardID)]
}

// CreateBoard appends a new empty board and makes it active.
func (s *Service) CreateBoard(name string) (models.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = NewBoardName
	}
	b := s.emptyBoard(name)
	_, err := s.update(func(st *models.State) (bool, error) {
		st.Boards = append(st.Boards, b)
		st.ActiveBoardID = b.ID
		return true, nil
	})
	if err != nil {
		return models.Board{}, err
	}
	s.logger.Info("board created", slog.String("board_id", b.ID), slog.String("name", name))
	return b, nil
}

// RenameBoard replaces the display name of a board.
func (s *Service) RenameBoard(id, name string) (models.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Board{}, ErrEmptyBoardName
	}
	var out models.Board
	_, err := s.update(func(st *models.State) (bool, error) {
		i := st.BoardIndex(id)
		if i < 0 {
			return false, errNotFound("board", id)
		}
		out = st.Boards[i]
		if out.Name == name {
			return false, nil
		}
		st.Boards[i].Name = name
		out = st.Boards[i].Clone()
		return true, nil
	})
	return out, err
}

// SetActiveBoard switches the board the task operations apply to.
func (s *Service) SetActiveBoard(id string) error {
	_, err := s.update(func(st *models.State) (bool, error) {
		if st.BoardIndex(id) < 0 {
			return false, errNotFound("board", id)
		}
		if st.ActiveBoardID == id {
			return false, nil
		}
		st.ActiveBoardID = id
		return true, nil
	})
	return err
}

// DeleteBoard removes a board after confirmation. The last board can never be deleted. When the
// active board goes away the first remaining board becomes active.
func (s *Service) DeleteBoard(ctx context.Context, id string, c Confirmer) error {
	cur := s.state.Load()
	if len(cur.Boards) <= 1 {
		s.logger.Warn("board delete rejected", slog.String("board_id", id), slog.String("error", ErrLastBoard.Error()))
		return ErrLastBoard
	}
	i := cur.BoardIndex(id)
	if i < 0 {
		return errNotFound("board", id)
	}
	prompt := Prompt{
		Title:   "Delete board",
		Message: fmt.Sprintf("Delete %q and all of its tasks? This cannot be undone.", cur.Boards[i].Name),
	}
	if !confirm(ctx, c, prompt) {
		return ErrNotConfirmed
	}

	_, err := s.update(func(st *models.State) (bool, error) {
		if len(st.Boards) <= 1 {
			return false, ErrLastBoard
		}
		i := st.BoardIndex(id)
		if i < 0 {
			return false, errNotFound("board", id)
		}
		st.Boards = append(st.Boards[:i:i], st.Boards[i+1:]...)
		if st.ActiveBoardID == id {
			st.ActiveBoardID = st.Boards[0].ID
		}
		return true, nil
	})
	if err == nil {
		s.logger.Info("board deleted", slog.String("board_id", id))
	}
	return err
}

// SetNotes replaces the active board's scratchpad.
func (s *Service) SetNotes(notes string) error {
	_, err := s.update(func(st *models.State) (bool, error) {
		b := activeBoard(st)
		if b.Notes == notes {
			return false, nil
		}
		b.Notes = notes
		return true, nil
	})
	return err
}

// AddTask appends a task built from the draft to the active board. Title validation belongs to
// the caller; the draft is stored as given apart from defaulting empty levels to low.
func (s *Service) AddTask(d models.TaskDraft) (models.Task, error) {
	task := models.Task{
		ID:          s.newID(),
		Title:       d.Title,
		Description: d.Description,
		URL:         d.URL,
		Status:      models.StatusTodo,
		Effort:      levelOrLow(d.Effort),
		Impact:      levelOrLow(d.Impact),
		Subtasks:    []models.Subtask{},
	}
	_, err := s.update(func(st *models.State) (bool, error) {
		b := activeBoard(st)
		b.Tasks = append(b.Tasks, task)
		return true, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask merges the draft into an existing task, keeping its id, status and subtasks.
func (s *Service) UpdateTask(id string, d models.TaskDraft) (models.Task, error) {
	var out models.Task
	_, err := s.update(func(st *models.State) (bool, error) {
		b := activeBoard(st)
		i := b.TaskIndex(id)
		if i < 0 {
			return false, errNotFound("task", id)
		}
		t := &b.Tasks[i]
		t.Title = d.Title
		t.Description = d.Description
		t.URL = d.URL
		t.Effort = levelOrLow(d.Effort)
		t.Impact = levelOrLow(d.Impact)
		out = t.Clone()
		return true, nil
	})
	return out, err
}

// DeleteTask removes a task and its subtasks from the active board after confirmation.
func (s *Service) DeleteTask(ctx context.Context, id string, c Confirmer) error {
	t, ok := s.Task(id)
	if !ok {
		return errNotFound("task", id)
	}
	prompt := Prompt{Title: "Delete task", Message: fmt.Sprintf("Delete %q?", t.Title)}
	if !confirm(ctx, c, prompt) {
		return ErrNotConfirmed
	}
	_, err := s.update(func(st *models.State) (bool, error) {
		if _, ok := takeTask(activeBoard(st), id); !ok {
			return false, errNotFound("task", id)
		}
		return true, nil
	})
	return err
}

// SetTaskStatus moves a task to another column without touching its position in the sequence.
func (s *Service) SetTaskStatus(id string, status models.Status) (models.Task, error) {
	if _, ok := models.ValidTaskStatuses[status]; !ok {
		return models.Task{}, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}
	var out models.Task
	_, err := s.update(func(st *models.State) (bool, error) {
		b := activeBoard(st)
		i := b.TaskIndex(id)
		if i < 0 {
			return false, errNotFound("task", id)
		}
		changed := b.Tasks[i].Status != status
		b.Tasks[i].Status = status
		out = b.Tasks[i].Clone()
		return changed, nil
	})
	return out, err
}

// ToggleSubtask flips a subtask's completion flag. The parent's status is not affected.
func (s *Service) ToggleSubtask(taskID, subtaskID string) (models.Subtask, error) {
	return s.editSubtask(taskID, subtaskID, func(sub *models.Subtask) bool {
		sub.Completed = !sub.Completed
		return true
	})
}

// SetSubtaskDescription replaces a subtask's description.
func (s *Service) SetSubtaskDescription(taskID, subtaskID, description string) (models.Subtask, error) {
	return s.editSubtask(taskID, subtaskID, func(sub *models.Subtask) bool {
		if sub.Description == description {
			return false
		}
		sub.Description = description
		return true
	})
}

func (s *Service) editSubtask(taskID, subtaskID string, fn func(*models.Subtask) bool) (models.Subtask, error) {
	var out models.Subtask
	_, err := s.update(func(st *models.State) (bool, error) {
		b := activeBoard(st)
		i := b.TaskIndex(taskID)
		if i < 0 {
			return false, errNotFound("task", taskID)
		}
		j := b.Tasks[i].SubtaskIndex(subtaskID)
		if j < 0 {
			return false, errNotFound("subtask", subtaskID)
		}
		changed := fn(&b.Tasks[i].Subtasks[j])
		out = b.Tasks[i].Subtasks[j]
		return changed, nil
	})
	return out, err
}

func levelOrLow(l models.Level) models.Level {
	if l == "" {
		return models.LevelLow
	}
	return l
}
