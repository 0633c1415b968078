// Package view derives read-only projections of a board's tasks: the category filter, the
// status columns and the flat list. Every function is pure and recomputed from a snapshot.
package view

import (
	"fmt"

	"focusboard/internal/models"
)

// Filter selects which matrix category is shown.
type Filter string

const FilterAll Filter = "all"

// ParseFilter accepts "all" (or empty) and the four matrix categories.
func ParseFilter(raw string) (Filter, error) {
	if raw == "" || Filter(raw) == FilterAll {
		return FilterAll, nil
	}
	for _, c := range models.Categories {
		if string(c) == raw {
			return Filter(c), nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", raw)
}

// Match reports whether the task passes the filter.
func (f Filter) Match(t models.Task) bool {
	return f == FilterAll || f == "" || Filter(t.Category()) == f
}

// Apply keeps the tasks that pass the filter, in their original order.
func Apply(tasks []models.Task, f Filter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Column is one status group of the board.
type Column struct {
	Status models.Status `json:"status" yaml:"status"`
	Title  string        `json:"title" yaml:"title"`
	Tasks  []models.Task `json:"tasks" yaml:"tasks"`
	Count  int           `json:"count" yaml:"count"`
}

// Columns groups the filtered tasks by status. Columns come in board order and keep the
// underlying sequence order inside each group.
func Columns(tasks []models.Task, f Filter) []Column {
	cols := make([]Column, len(models.Statuses))
	pos := make(map[models.Status]int, len(models.Statuses))
	for i, s := range models.Statuses {
		cols[i] = Column{Status: s, Title: s.Title(), Tasks: []models.Task{}}
		pos[s] = i
	}
	for _, t := range Apply(tasks, f) {
		i, ok := pos[t.Status]
		if !ok {
			continue
		}
		cols[i].Tasks = append(cols[i].Tasks, t)
		cols[i].Count++
	}
	return cols
}

// ListItem is a row of the flat list view.
type ListItem struct {
	Task              models.Task     `json:"task" yaml:"task"`
	Category          models.Category `json:"category" yaml:"category"`
	CategoryLabel     string          `json:"categoryLabel" yaml:"categoryLabel"`
	SubtaskCount      int             `json:"subtaskCount" yaml:"subtaskCount"`
	CompletedSubtasks int             `json:"completedSubtasks" yaml:"completedSubtasks"`
}

// Summary renders the completion ratio as "completed/total".
func (li ListItem) Summary() string {
	return fmt.Sprintf("%d/%d", li.CompletedSubtasks, li.SubtaskCount)
}

// List annotates the filtered tasks with their category and subtask completion.
func List(tasks []models.Task, f Filter) []ListItem {
	filtered := Apply(tasks, f)
	out := make([]ListItem, 0, len(filtered))
	for _, t := range filtered {
		c := t.Category()
		out = append(out, ListItem{
			Task:              t,
			Category:          c,
			CategoryLabel:     c.Info().Label,
			SubtaskCount:      len(t.Subtasks),
			CompletedSubtasks: t.CompletedSubtasks(),
		})
	}
	return out
}
