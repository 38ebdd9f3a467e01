package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// ProjectHandler handles HTTP requests for internal work tracking.
// All routes require an authenticated agent or admin.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Name string `json:"name" validate:"required"`
}

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"      validate:"omitempty,oneof=todo in_progress done"`
	Priority    int        `json:"priority"    validate:"omitempty,oneof=1 2 3"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *int       `json:"priority"`
	IsDone      *bool      `json:"is_done"`
	DueDate     *time.Time `json:"due_date"`
	ClearDue    bool       `json:"clear_due"`
}

type createCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// CreateProject handles POST /projects.
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	project, err := h.service.CreateProject(c.Request().Context(), req.Name, claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// GetProject handles GET /projects/:id.
func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	project, err := h.service.GetProject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// ListProjects handles GET /projects, scoped to projects the caller
// owns or is a member of.
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	projects, err := h.service.ListProjects(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// DeleteProject handles DELETE /projects/:id. Owner only.
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProject(c.Request().Context(), id, claims.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateTask handles POST /projects/:id/tasks.
func (h *ProjectHandler) CreateTask(c echo.Context) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.CreateTask(c.Request().Context(), projectID, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask handles GET /tasks/:id.
func (h *ProjectHandler) GetTask(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.service.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles PATCH /tasks/:id. Absent fields keep their current
// values; clear_due removes the due date.
func (h *ProjectHandler) UpdateTask(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		IsDone:      req.IsDone,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDue,
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		in.Status = &s
	}

	task, err := h.service.UpdateTask(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// ToggleTask handles POST /tasks/:id/toggle, flipping completion.
func (h *ProjectHandler) ToggleTask(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.service.ToggleTask(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/:id.
func (h *ProjectHandler) DeleteTask(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateComment handles POST /tasks/:id/comments.
func (h *ProjectHandler) CreateComment(c echo.Context) error {
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	comment, err := h.service.CreateComment(c.Request().Context(), taskID, claims.UserID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}
