package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"focusboard/internal/board"
	"focusboard/internal/models"
	"focusboard/internal/view"
)

// Server provides HTTP handlers for the FocusBoard backend.
type Server struct {
	engine    *gin.Engine
	board     *board.Service
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(svc *board.Service, logger *slog.Logger, staticDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))

	srv := &Server{
		engine:    router,
		board:     svc,
		logger:    logger,
		staticDir: staticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)
		api.GET("/state", s.handleState)

		boards := api.Group("/boards")
		{
			boards.GET("", s.handleListBoards)
			boards.POST("", s.handleCreateBoard)
			boards.PUT(":id", s.handleRenameBoard)
			boards.DELETE(":id", s.handleDeleteBoard)
			boards.POST(":id/activate", s.handleActivateBoard)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks)
			tasks.POST("", s.handleCreateTask)
			tasks.PUT(":id", s.handleUpdateTask)
			tasks.DELETE(":id", s.handleDeleteTask)
			tasks.PUT(":id/status", s.handleSetTaskStatus)
			tasks.POST(":id/subtasks/:subtaskId/toggle", s.handleToggleSubtask)
			tasks.PUT(":id/subtasks/:subtaskId", s.handleUpdateSubtask)
		}

		api.GET("/columns", s.handleColumns)
		api.GET("/notes", s.handleGetNotes)
		api.PUT("/notes", s.handleSetNotes)
		api.POST("/drop", s.handleDrop)
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleState returns every board and the active selection.
func (s *Server) handleState(c *gin.Context) {
	respondSuccess(c, http.StatusOK, s.board.Snapshot())
}

// parseFilter reads the ?filter= query parameter.
func parseFilter(c *gin.Context) (view.Filter, error) {
	return view.ParseFilter(c.Query("filter"))
}

// confirmation maps ?confirm=true onto a Confirmer for destructive operations.
func confirmation(c *gin.Context) board.Confirmer {
	return board.Confirmed(c.Query("confirm") == "true")
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case board.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, board.ErrLastBoard):
		return http.StatusConflict
	case errors.Is(err, board.ErrNotConfirmed):
		return http.StatusPreconditionFailed
	case errors.Is(err, board.ErrMalformedPayload),
		errors.Is(err, board.ErrInvalidTarget),
		errors.Is(err, board.ErrEmptyBoardName),
		errors.Is(err, models.ErrEmptyTitle),
		errors.Is(err, models.ErrInvalidLevel),
		errors.Is(err, models.ErrInvalidStatus):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail responds with the status that matches err.
func (s *Server) fail(c *gin.Context, err error) {
	s.respondError(c, statusFor(err), err)
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(c.Request.Context(), level, "request failed",
			slog.String("path", c.FullPath()), slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
