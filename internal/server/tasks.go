package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusboard/internal/models"
	"focusboard/internal/view"
)

type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Effort      *string `json:"effort"`
	Impact      *string `json:"impact"`
	URL         *string `json:"url"`
}

// apply overlays the request fields that were sent onto the draft.
func (r taskRequest) apply(d models.TaskDraft) models.TaskDraft {
	if r.Title != nil {
		d.Title = *r.Title
	}
	if r.Description != nil {
		d.Description = *r.Description
	}
	if r.Effort != nil {
		d.Effort = models.Level(*r.Effort)
	}
	if r.Impact != nil {
		d.Impact = models.Level(*r.Impact)
	}
	if r.URL != nil {
		d.URL = *r.URL
	}
	return d
}

type statusRequest struct {
	Status string `json:"status"`
}

type subtaskRequest struct {
	Description *string `json:"description"`
}

// handleListTasks returns the flat list view of the active board.
func (s *Server) handleListTasks(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	b := s.board.ActiveBoard()
	respondSuccess(c, http.StatusOK, gin.H{"boardId": b.ID, "filter": f, "tasks": view.List(b.Tasks, f)})
}

// handleColumns returns the status columns of the active board.
func (s *Server) handleColumns(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	b := s.board.ActiveBoard()
	respondSuccess(c, http.StatusOK, gin.H{"boardId": b.ID, "filter": f, "columns": view.Columns(b.Tasks, f)})
}

// handleCreateTask appends a task to the active board's To Do column.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	draft, err := req.apply(models.TaskDraft{}).Validate()
	if err != nil {
		s.fail(c, err)
		return
	}
	task, err := s.board.AddTask(draft)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

// handleUpdateTask merges the sent fields into the task's current draft.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id := c.Param("id")
	current, ok := s.board.Task(id)
	if !ok {
		s.respondError(c, http.StatusNotFound, errTaskNotFound(id))
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	draft, err := req.apply(models.DraftFromTask(current)).Validate()
	if err != nil {
		s.fail(c, err)
		return
	}
	task, err := s.board.UpdateTask(id, draft)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task and its subtasks. The caller confirms with ?confirm=true.
func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.board.DeleteTask(c.Request.Context(), c.Param("id"), confirmation(c)); err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleSetTaskStatus moves a task to another column in place.
func (s *Server) handleSetTaskStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		s.fail(c, err)
		return
	}

	task, err := s.board.SetTaskStatus(c.Param("id"), status)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleToggleSubtask flips a subtask's completion flag.
func (s *Server) handleToggleSubtask(c *gin.Context) {
	sub, err := s.board.ToggleSubtask(c.Param("id"), c.Param("subtaskId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"subtask": sub})
}

// handleUpdateSubtask edits a subtask's description.
func (s *Server) handleUpdateSubtask(c *gin.Context) {
	var req subtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Description == nil {
		s.respondError(c, http.StatusBadRequest, errMissingField("description"))
		return
	}

	sub, err := s.board.SetSubtaskDescription(c.Param("id"), c.Param("subtaskId"), *req.Description)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"subtask": sub})
}
