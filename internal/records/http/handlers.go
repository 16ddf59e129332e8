// Package http serves the records collections over REST.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/records/repository"
	"github.com/gin-gonic/gin"
)

// Register mounts every collection under rg:
//
//	GET/POST /{collection}, PUT/DELETE /{collection}/:id,
//	GET /projects/:id/tasks, POST /auth/login
func Register(rg gin.IRouter, repo repository.Repository, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "records-api")

	projects := registerCollection(rg, "projects", repo.Projects(), logger)
	projects.GET("/:id/tasks", projectTasks(repo, logger))

	registerCollection(rg, "tasks", repo.Tasks(), logger)
	registerCollection(rg, "roles", repo.Roles(), logger)
	registerCollection(rg, "clients", repo.Clients(), logger)
	registerCollection(rg, "leads", repo.Leads(), logger)
	registerCollection(rg, "workspaces", repo.Workspaces(), logger)

	participants := &collectionHandler[domain.Participant]{name: "participants", coll: repo.Participants(), logger: logger}
	pg := rg.Group("/participants")
	pg.GET("", participants.list)
	pg.POST("", createParticipant(repo, logger))
	pg.PUT("/:id", participants.update)
	pg.DELETE("/:id", participants.delete)

	rg.POST("/auth/login", login(repo, logger))
}

type collectionHandler[T any] struct {
	name   string
	coll   repository.Collection[T]
	logger *slog.Logger
}

func registerCollection[T any](rg gin.IRouter, name string, coll repository.Collection[T], logger *slog.Logger) *gin.RouterGroup {
	h := &collectionHandler[T]{name: name, coll: coll, logger: logger}
	g := rg.Group("/" + name)
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	return g
}

func (h *collectionHandler[T]) list(c *gin.Context) {
	items, err := h.coll.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *collectionHandler[T]) create(c *gin.Context) {
	var v T
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	created, err := h.coll.Create(c.Request.Context(), v)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *collectionHandler[T]) update(c *gin.Context) {
	var v T
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	updated, err := h.coll.Update(c.Request.Context(), c.Param("id"), v)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *collectionHandler[T]) delete(c *gin.Context) {
	if err := h.coll.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func projectTasks(repo repository.Repository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := repo.ProjectTasks(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
	}
}

type participantRequest struct {
	domain.Participant
	Password string `json:"password"`
}

func createParticipant(repo repository.Repository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req participantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid body"})
			return
		}
		created, err := repo.CreateParticipant(c.Request.Context(), req.Participant, req.Password)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func login(repo repository.Repository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "Email and password are required"})
			return
		}
		user, err := repo.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidRecord):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid credentials"})
	default:
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}
