package board

import (
	"fmt"
	"log/slog"

	"focusboard/internal/models"
)

// Drop parses a raw drag payload and applies it to the target. A malformed payload abandons the
// whole gesture: nothing is mutated and the error wraps ErrMalformedPayload. Otherwise the result
// reports whether the state changed; referential misses and invariant violations are no-ops.
func (s *Service) Drop(raw []byte, target Target) (bool, error) {
	p, err := ParsePayload(raw)
	if err != nil {
		s.logger.Warn("drop abandoned", slog.String("target", string(target.Kind)), slog.String("error", err.Error()))
		return false, err
	}
	return s.Apply(p, target)
}

// Apply dispatches an already parsed move intent to the rule for its target.
func (s *Service) Apply(p Payload, target Target) (bool, error) {
	switch target.Kind {
	case TargetColumn:
		status, err := models.ParseStatus(target.ID)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
		}
		return s.DropOnColumn(p, status), nil
	case TargetTask:
		return s.DropOnTask(p, target.ID), nil
	case TargetSubtask:
		return s.DropOnSubtask(p, target.ID, target.Index), nil
	case TargetBoard:
		return s.DropOnBoard(p, target.ID), nil
	}
	return false, fmt.Errorf("%w: unknown kind %q", ErrInvalidTarget, target.Kind)
}

// DropOnColumn handles a drop onto a status column. A task changes status in place; a subtask is
// promoted to a task in that column and appended to the board.
func (s *Service) DropOnColumn(p Payload, status models.Status) bool {
	return s.reorganize("column", p, string(status), func(st *models.State) (bool, string) {
		b := activeBoard(st)
		switch p.Kind {
		case KindTask:
			i := b.TaskIndex(p.ID)
			if i < 0 {
				return false, "task not found"
			}
			if b.Tasks[i].Status == status {
				return false, "status unchanged"
			}
			b.Tasks[i].Status = status
			return true, ""
		case KindSubtask:
			sub, ok := takeSubtask(b, p.ParentID, p.ID)
			if !ok {
				return false, "subtask not found in parent"
			}
			b.Tasks = append(b.Tasks, sub.AsTask(status))
			return true, ""
		}
		return false, "boards cannot be dropped on a column"
	})
}

// DropOnTask handles a drop onto a task card. A task without subtasks is demoted into the
// target's subtasks; a subtask of another task is reparented. Both land at the end of the list.
func (s *Service) DropOnTask(p Payload, targetID string) bool {
	return s.reorganize("task", p, targetID, func(st *models.State) (bool, string) {
		return dropOnTask(activeBoard(st), p, targetID)
	})
}

func dropOnTask(b *models.Board, p Payload, targetID string) (bool, string) {
	if p.ID == targetID {
		return false, "dropped onto itself"
	}
	if b.TaskIndex(targetID) < 0 {
		return false, "target task not found"
	}
	switch p.Kind {
	case KindTask:
		i := b.TaskIndex(p.ID)
		if i < 0 {
			return false, "task not found"
		}
		if len(b.Tasks[i].Subtasks) > 0 {
			return false, "task owns subtasks and cannot be nested"
		}
		task, _ := takeTask(b, p.ID)
		t := &b.Tasks[b.TaskIndex(targetID)]
		t.Subtasks = append(t.Subtasks, task.AsSubtask())
		return true, ""
	case KindSubtask:
		if p.ParentID == targetID {
			return false, "already a subtask of the target"
		}
		sub, ok := takeSubtask(b, p.ParentID, p.ID)
		if !ok {
			return false, "subtask not found in parent"
		}
		t := &b.Tasks[b.TaskIndex(targetID)]
		t.Subtasks = append(t.Subtasks, sub)
		return true, ""
	}
	return false, "boards cannot be dropped on a task"
}

// DropOnSubtask handles a drop onto position index of parentID's subtask list. Only a subtask of
// the same parent is reordered; anything else is treated as a drop on the parent card.
func (s *Service) DropOnSubtask(p Payload, parentID string, index int) bool {
	return s.reorganize("subtask", p, parentID, func(st *models.State) (bool, string) {
		b := activeBoard(st)
		if p.Kind == KindBoard {
			return false, "boards cannot be dropped on a subtask"
		}
		if p.Kind != KindSubtask || p.ParentID != parentID {
			return dropOnTask(b, p, parentID)
		}

		pi := b.TaskIndex(parentID)
		if pi < 0 {
			return false, "parent task not found"
		}
		moved, ok := reorder(b.Tasks[pi].Subtasks, func(sub models.Subtask) bool { return sub.ID == p.ID }, index)
		if !ok {
			return false, "subtask not found or position unchanged"
		}
		b.Tasks[pi].Subtasks = moved
		return true, ""
	})
}

// DropOnBoard handles a drop onto a board in the board list. A board is moved to the target's
// position; a task or subtask of the active board is moved to the end of the target board.
func (s *Service) DropOnBoard(p Payload, boardID string) bool {
	return s.reorganize("board", p, boardID, func(st *models.State) (bool, string) {
		switch p.Kind {
		case KindBoard:
			to := st.BoardIndex(boardID)
			if to < 0 || st.BoardIndex(p.ID) < 0 {
				return false, "board not found"
			}
			moved, ok := reorder(st.Boards, func(b models.Board) bool { return b.ID == p.ID }, to)
			if !ok {
				return false, "position unchanged"
			}
			st.Boards = moved
			return true, ""
		case KindTask, KindSubtask:
			if boardID == st.ActiveBoardID {
				return false, "target is the active board"
			}
			to := st.BoardIndex(boardID)
			if to < 0 {
				return false, "board not found"
			}
			src := activeBoard(st)
			var task models.Task
			if p.Kind == KindTask {
				t, ok := takeTask(src, p.ID)
				if !ok {
					return false, "task not found"
				}
				task = t
			} else {
				sub, ok := takeSubtask(src, p.ParentID, p.ID)
				if !ok {
					return false, "subtask not found in parent"
				}
				task = sub.AsTask(models.StatusTodo)
			}
			st.Boards[to].Tasks = append(st.Boards[to].Tasks, task)
			return true, ""
		}
		return false, "unknown payload kind"
	})
}

func (s *Service) reorganize(op string, p Payload, target string, fn func(st *models.State) (bool, string)) bool {
	var reason string
	changed, _ := s.update(func(st *models.State) (bool, error) {
		ok, why := fn(st)
		reason = why
		return ok, nil
	})
	attrs := []any{
		slog.String("op", op),
		slog.String("kind", string(p.Kind)),
		slog.String("id", p.ID),
		slog.String("target", target),
	}
	if !changed {
		s.logger.Debug("drop ignored", append(attrs, slog.String("reason", reason))...)
		return false
	}
	s.logger.Debug("drop applied", attrs...)
	return true
}

// takeTask removes a task from the board's sequence.
func takeTask(b *models.Board, id string) (models.Task, bool) {
	i := b.TaskIndex(id)
	if i < 0 {
		return models.Task{}, false
	}
	t := b.Tasks[i]
	b.Tasks = append(b.Tasks[:i:i], b.Tasks[i+1:]...)
	return t, true
}

// takeSubtask removes a subtask from the named parent on the board.
func takeSubtask(b *models.Board, parentID, id string) (models.Subtask, bool) {
	pi := b.TaskIndex(parentID)
	if pi < 0 {
		return models.Subtask{}, false
	}
	parent := &b.Tasks[pi]
	j := parent.SubtaskIndex(id)
	if j < 0 {
		return models.Subtask{}, false
	}
	sub := parent.Subtasks[j]
	parent.Subtasks = append(parent.Subtasks[:j:j], parent.Subtasks[j+1:]...)
	return sub, true
}

// reorder removes the first element matching and reinserts it at index, counted in the list
// after removal and clamped to its bounds. It reports false when nothing matches or the element
// would land where it already is.
func reorder[T any](items []T, match func(T) bool, index int) ([]T, bool) {
	from := -1
	for i := range items {
		if match(items[i]) {
			from = i
			break
		}
	}
	if from < 0 {
		return items, false
	}
	if index < 0 {
		index = 0
	}
	if index > len(items)-1 {
		index = len(items) - 1
	}
	if index == from {
		return items, false
	}

	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	out = append(out[:index], append([]T{items[from]}, out[index:]...)...)
	return out, true
}
