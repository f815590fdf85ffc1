package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sokolovamp/collabra/internal/gatekeeper"
	"github.com/sokolovamp/collabra/internal/handlers/dto"
	"github.com/sokolovamp/collabra/internal/middleware"
)

// ProjectHandler — HTTP-обвязка gatekeeper'а, её потребляет внешний UI
type ProjectHandler struct {
	gatekeeper *gatekeeper.Service
}

func NewProjectHandler(gk *gatekeeper.Service) *ProjectHandler {
	return &ProjectHandler{gatekeeper: gk}
}

// gatekeeperError переводит доменные ошибки в HTTP-статусы
func gatekeeperError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gatekeeper.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, gatekeeper.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, gatekeeper.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return uuid.Nil, false
	}
	return id, true
}

// CreateProject создаёт проект; создатель становится первым участником
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.gatekeeper.CreateProject(c.Request.Context(), req.Name, userID)
	if err != nil {
		gatekeeperError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewProjectResponse(project))
}

// ListProjects возвращает проекты текущего пользователя
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	projects, err := h.gatekeeper.ListProjects(c.Request.Context(), userID)
	if err != nil {
		gatekeeperError(c, err)
		return
	}

	out := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		out[i] = dto.NewProjectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, gin.H{"projects": out})
}

// GetProject возвращает проект с развёрнутым набором участников
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	project, err := h.gatekeeper.GetProject(c.Request.Context(), id)
	if err != nil {
		gatekeeperError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProjectResponse(project))
}

// AddMembers добавляет участников; дубликаты молча отбрасываются
func (h *ProjectHandler) AddMembers(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req dto.MembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	members, err := h.gatekeeper.AddMembers(c.Request.Context(), id, userID, req.UserIDs)
	if err != nil {
		gatekeeperError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": dto.NewMemberResponses(members)})
}

// RemoveMembers исключает участников; отсутствующие — no-op
func (h *ProjectHandler) RemoveMembers(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req dto.MembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	members, err := h.gatekeeper.RemoveMembers(c.Request.Context(), id, userID, req.UserIDs)
	if err != nil {
		gatekeeperError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": dto.NewMemberResponses(members)})
}

// UpdateWorkspace заменяет блоб рабочего пространства проекта
func (h *ProjectHandler) UpdateWorkspace(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.gatekeeper.UpdateWorkspace(c.Request.Context(), id, userID, req.Workspace)
	if err != nil {
		gatekeeperError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProjectResponse(project))
}
