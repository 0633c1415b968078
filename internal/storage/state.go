package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"focusboard/internal/board"
	"focusboard/internal/models"
)

// Legacy keys written by the single-board version of the app.
const (
	LegacyTasksKey = "kanban-tasks"
	LegacyNotesKey = "kanban-notes"
)

// Keys is the key layout used for the multi-board state.
type Keys struct {
	Boards      string
	ActiveBoard string
	LegacyTasks string
	LegacyNotes string
}

// KeysWithPrefix namespaces the multi-board keys. Legacy keys are never prefixed.
func KeysWithPrefix(prefix string) Keys {
	k := Keys{Boards: "boards", ActiveBoard: "active-board", LegacyTasks: LegacyTasksKey, LegacyNotes: LegacyNotesKey}
	if prefix != "" {
		k.Boards = prefix + ":" + k.Boards
		k.ActiveBoard = prefix + ":" + k.ActiveBoard
	}
	return k
}

// EncodeBoards serializes the board collection.
func EncodeBoards(boards []models.Board) ([]byte, error) {
	if boards == nil {
		boards = []models.Board{}
	}
	return json.Marshal(boards)
}

// DecodeBoards parses a board collection blob.
func DecodeBoards(blob []byte) ([]models.Board, error) {
	var boards []models.Board
	if err := json.Unmarshal(blob, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// Store loads and saves the full state through a KV backend.
type Store struct {
	kv      KV
	keys    Keys
	logger  *slog.Logger
	timeout time.Duration
	newID   func() string
}

// New wraps a KV backend with the given key prefix.
func New(kv KV, prefix string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kv:      kv,
		keys:    KeysWithPrefix(prefix),
		logger:  logger,
		timeout: 5 * time.Second,
		newID:   uuid.NewString,
	}
}

// Keys returns the key layout in use.
func (s *Store) Keys() Keys {
	return s.keys
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Load reads the persisted state. When only the legacy single-board layout exists it is migrated
// into one board, which is saved right away. With no data at all an empty state is returned.
func (s *Store) Load(ctx context.Context) (models.State, error) {
	blob, ok, err := s.kv.Load(ctx, s.keys.Boards)
	if err != nil {
		return models.State{}, fmt.Errorf("loading boards: %w", err)
	}
	if ok && len(bytes.TrimSpace(blob)) > 0 {
		boards, err := DecodeBoards(blob)
		if err != nil {
			return models.State{}, fmt.Errorf("decoding boards: %w", err)
		}
		active, _, err := s.kv.Load(ctx, s.keys.ActiveBoard)
		if err != nil {
			return models.State{}, fmt.Errorf("loading active board: %w", err)
		}
		st := models.State{Boards: boards, ActiveBoardID: string(active)}
		if st.BoardIndex(st.ActiveBoardID) < 0 && len(st.Boards) > 0 {
			st.ActiveBoardID = st.Boards[0].ID
		}
		return st, nil
	}

	return s.migrateLegacy(ctx)
}

func (s *Store) migrateLegacy(ctx context.Context) (models.State, error) {
	tasksBlob, hasTasks, err := s.kv.Load(ctx, s.keys.LegacyTasks)
	if err != nil {
		return models.State{}, fmt.Errorf("loading legacy tasks: %w", err)
	}
	notes, hasNotes, err := s.kv.Load(ctx, s.keys.LegacyNotes)
	if err != nil {
		return models.State{}, fmt.Errorf("loading legacy notes: %w", err)
	}
	if !hasTasks && !hasNotes {
		return models.State{}, nil
	}

	tasks := []models.Task{}
	if hasTasks && len(bytes.TrimSpace(tasksBlob)) > 0 {
		var legacy []models.Task
		if err := json.Unmarshal(tasksBlob, &legacy); err != nil {
			return models.State{}, fmt.Errorf("decoding legacy tasks: %w", err)
		}
		for _, t := range legacy {
			if t.Subtasks == nil {
				t.Subtasks = []models.Subtask{}
			}
			if t.Status == "" {
				t.Status = models.StatusTodo
			}
			tasks = append(tasks, t)
		}
	}

	b := models.Board{ID: s.newID(), Name: board.DefaultBoardName, Tasks: tasks, Notes: string(notes)}
	st := models.State{Boards: []models.Board{b}, ActiveBoardID: b.ID}
	if err := s.Save(ctx, st); err != nil {
		return models.State{}, fmt.Errorf("saving migrated state: %w", err)
	}
	s.logger.Info("migrated legacy board", slog.String("board_id", b.ID), slog.Int("tasks", len(tasks)))
	return st, nil
}

// Save writes the board collection and then the active board id. The two writes are not atomic.
func (s *Store) Save(ctx context.Context, st models.State) error {
	blob, err := EncodeBoards(st.Boards)
	if err != nil {
		return fmt.Errorf("encoding boards: %w", err)
	}
	if err := s.kv.Save(ctx, s.keys.Boards, blob); err != nil {
		return fmt.Errorf("saving boards: %w", err)
	}
	if err := s.kv.Save(ctx, s.keys.ActiveBoard, []byte(st.ActiveBoardID)); err != nil {
		return fmt.Errorf("saving active board: %w", err)
	}
	return nil
}

// Persist is a board.Service subscriber. Failures are logged and dropped.
func (s *Store) Persist(st models.State) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.Save(ctx, st); err != nil {
		s.logger.Error("persist state failed", slog.String("error", err.Error()))
	}
}
