package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type boardRequest struct {
	Name string `json:"name"`
}

// handleListBoards returns all boards in order along with the active id.
func (s *Server) handleListBoards(c *gin.Context) {
	st := s.board.Snapshot()
	respondSuccess(c, http.StatusOK, gin.H{"boards": st.Boards, "activeBoardId": st.ActiveBoardID})
}

// handleCreateBoard appends a board and switches to it.
func (s *Server) handleCreateBoard(c *gin.Context) {
	var req boardRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
	}

	b, err := s.board.CreateBoard(req.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"board": b})
}

// handleRenameBoard changes a board's display name.
func (s *Server) handleRenameBoard(c *gin.Context) {
	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	b, err := s.board.RenameBoard(c.Param("id"), req.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"board": b})
}

// handleDeleteBoard removes a board. The caller confirms with ?confirm=true.
func (s *Server) handleDeleteBoard(c *gin.Context) {
	if err := s.board.DeleteBoard(c.Request.Context(), c.Param("id"), confirmation(c)); err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted", "activeBoardId": s.board.Snapshot().ActiveBoardID})
}

// handleActivateBoard switches the board task operations apply to.
func (s *Server) handleActivateBoard(c *gin.Context) {
	if err := s.board.SetActiveBoard(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"board": s.board.ActiveBoard()})
}
