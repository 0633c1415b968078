package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"focusboard/internal/board"
)

type dropRequest struct {
	// Payload is the drag transfer data, either inline JSON or the JSON text as a string.
	Payload json.RawMessage `json:"payload"`
	Target  board.Target    `json:"target"`
}

// rawPayload unwraps a payload that was sent as a JSON string.
func (r dropRequest) rawPayload() []byte {
	raw := bytes.TrimSpace(r.Payload)
	if len(raw) > 0 && raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			return []byte(text)
		}
	}
	return raw
}

// handleDrop applies a drag-and-drop gesture and reports whether the state changed.
func (s *Server) handleDrop(c *gin.Context) {
	var req dropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	applied, err := s.board.Drop(req.rawPayload(), req.Target)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"applied": applied, "activeBoardId": s.board.Snapshot().ActiveBoardID})
}
