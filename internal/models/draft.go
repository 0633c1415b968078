package models

import (
	"errors"
	"strings"
)

var ErrEmptyTitle = errors.New("task title must not be empty")

// TaskDraft is the record collected by the task editing dialog.
type TaskDraft struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Effort      Level  `json:"effort" yaml:"effort"`
	Impact      Level  `json:"impact" yaml:"impact"`
	URL         string `json:"url" yaml:"url"`
}

// DraftFromTask prefills a draft with the task's current fields.
func DraftFromTask(t Task) TaskDraft {
	return TaskDraft{
		Title:       t.Title,
		Description: t.Description,
		Effort:      t.Effort,
		Impact:      t.Impact,
		URL:         t.URL,
	}
}

// Validate normalizes the draft and rejects it when the title is blank or a level is unknown.
func (d TaskDraft) Validate() (TaskDraft, error) {
	if strings.TrimSpace(d.Title) == "" {
		return TaskDraft{}, ErrEmptyTitle
	}
	effort, err := ParseLevel(string(d.Effort))
	if err != nil {
		return TaskDraft{}, err
	}
	impact, err := ParseLevel(string(d.Impact))
	if err != nil {
		return TaskDraft{}, err
	}
	d.Effort = effort
	d.Impact = impact
	return d, nil
}
