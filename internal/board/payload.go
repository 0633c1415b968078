package board

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Kind tags what a drag gesture carries.
type Kind string

const (
	KindTask    Kind = "task"
	KindSubtask Kind = "subtask"
	KindBoard   Kind = "board"
)

// Payload is the move intent produced by a drag gesture.
// ParentID is set only for subtasks and names the task that currently owns it.
type Payload struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"type"`
	ParentID string `json:"parentId,omitempty"`
}

type wirePayload struct {
	ID       *string `json:"id"`
	Type     *string `json:"type"`
	ParentID *string `json:"parentId"`
}

// ParsePayload decodes the drag transfer payload
// {"id": string, "type": "task"|"subtask"|"board", "parentId": string|null}.
// Unknown types, missing ids and subtasks without a parent are rejected.
func ParsePayload(raw []byte) (Payload, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Payload{}, fmt.Errorf("%w: empty", ErrMalformedPayload)
	}
	var w wirePayload
	if err := json.Unmarshal(raw, &w); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if w.ID == nil || strings.TrimSpace(*w.ID) == "" {
		return Payload{}, fmt.Errorf("%w: missing id", ErrMalformedPayload)
	}
	if w.Type == nil {
		return Payload{}, fmt.Errorf("%w: missing type", ErrMalformedPayload)
	}

	p := Payload{ID: *w.ID, Kind: Kind(*w.Type)}
	switch p.Kind {
	case KindTask, KindBoard:
	case KindSubtask:
		if w.ParentID == nil || strings.TrimSpace(*w.ParentID) == "" {
			return Payload{}, fmt.Errorf("%w: subtask without parentId", ErrMalformedPayload)
		}
		p.ParentID = *w.ParentID
	default:
		return Payload{}, fmt.Errorf("%w: unknown type %q", ErrMalformedPayload, *w.Type)
	}
	return p, nil
}

// Marshal encodes the payload in its transfer form.
func (p Payload) Marshal() ([]byte, error) {
	w := map[string]any{"id": p.ID, "type": string(p.Kind), "parentId": nil}
	if p.Kind == KindSubtask {
		w["parentId"] = p.ParentID
	}
	return json.Marshal(w)
}

// TargetKind tags what a payload is dropped onto.
type TargetKind string

const (
	TargetColumn  TargetKind = "column"
	TargetTask    TargetKind = "task"
	TargetSubtask TargetKind = "subtask"
	TargetBoard   TargetKind = "board"
)

// Target is a drop location. For TargetColumn the ID is a status, for TargetSubtask it is
// the parent task and Index is the insertion position inside its subtask list.
type Target struct {
	Kind  TargetKind `json:"kind"`
	ID    string     `json:"id"`
	Index int        `json:"index,omitempty"`
}
