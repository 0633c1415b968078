package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type notesRequest struct {
	Notes *string `json:"notes"`
}

func (s *Server) handleGetNotes(c *gin.Context) {
	b := s.board.ActiveBoard()
	respondSuccess(c, http.StatusOK, gin.H{"boardId": b.ID, "notes": b.Notes})
}

// handleSetNotes replaces the active board's scratchpad.
func (s *Server) handleSetNotes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Notes == nil {
		s.respondError(c, http.StatusBadRequest, errMissingField("notes"))
		return
	}
	if err := s.board.SetNotes(*req.Notes); err != nil {
		s.fail(c, err)
		return
	}
	b := s.board.ActiveBoard()
	respondSuccess(c, http.StatusOK, gin.H{"boardId": b.ID, "notes": b.Notes})
}
