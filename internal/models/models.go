package models

import (
	"errors"
	"fmt"
)

// Status is the board column a task sits in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// ValidTaskStatuses enumerates the statuses supported by the board columns.
var ValidTaskStatuses = map[Status]string{
	StatusTodo:       "To Do",
	StatusInProgress: "In Progress",
	StatusDone:       "Complete",
}

var ErrInvalidStatus = errors.New("invalid status")

// ParseStatus validates a column identifier.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := ValidTaskStatuses[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Title returns the column heading for the status.
func (s Status) Title() string {
	return ValidTaskStatuses[s]
}

// Board is a named, ordered collection of tasks plus a notes scratchpad.
type Board struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
	Notes string `json:"notes" yaml:"notes"`
}

// Task is a top-level card on a board.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string    `json:"url,omitempty" yaml:"url,omitempty"`
	Status      Status    `json:"status" yaml:"status"`
	Effort      Level     `json:"effort" yaml:"effort"`
	Impact      Level     `json:"impact" yaml:"impact"`
	Subtasks    []Subtask `json:"subtasks" yaml:"subtasks"`
}

// Subtask is a single-level child of a task. It cannot own children.
type Subtask struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// State is the persisted primary state: every board plus the active selection.
type State struct {
	Boards        []Board `json:"boards" yaml:"boards"`
	ActiveBoardID string  `json:"activeBoardId" yaml:"activeBoardId"`
}

// Category classifies the task on the impact/effort matrix.
func (t Task) Category() Category {
	return Classify(t.Impact, t.Effort)
}

// CompletedSubtasks counts subtasks marked completed.
func (t Task) CompletedSubtasks() int {
	n := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			n++
		}
	}
	return n
}

// AsSubtask converts a task into the subtask shape. Completion always starts cleared.
func (t Task) AsSubtask() Subtask {
	return Subtask{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		URL:         t.URL,
	}
}

// AsTask promotes a subtask into a standalone task in the given column.
func (s Subtask) AsTask(status Status) Task {
	return Task{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		URL:         s.URL,
		Status:      status,
		Effort:      LevelLow,
		Impact:      LevelLow,
		Subtasks:    []Subtask{},
	}
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	out.Subtasks = append(make([]Subtask, 0, len(t.Subtasks)), t.Subtasks...)
	return out
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := b
	out.Tasks = make([]Task, len(b.Tasks))
	for i, t := range b.Tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{ActiveBoardID: s.ActiveBoardID, Boards: make([]Board, len(s.Boards))}
	for i, b := range s.Boards {
		out.Boards[i] = b.Clone()
	}
	return out
}

// BoardIndex returns the position of the board with the given id, or -1.
func (s State) BoardIndex(id string) int {
	for i := range s.Boards {
		if s.Boards[i].ID == id {
			return i
		}
	}
	return -1
}

// TaskIndex returns the position of the task with the given id, or -1.
func (b Board) TaskIndex(id string) int {
	for i := range b.Tasks {
		if b.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// SubtaskIndex returns the position of the subtask with the given id, or -1.
func (t Task) SubtaskIndex(id string) int {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			return i
		}
	}
	return -1
}
