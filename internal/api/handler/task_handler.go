package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamforge/ems-api/internal/api/metrics"
	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type taskRequest struct {
	Description string   `json:"description" validate:"required"`
	Deadline    string   `json:"deadline"    validate:"required,datetime=2006-01-02"`
	Status      string   `json:"status"      validate:"omitempty,oneof='Not Started' 'In Progress' Completed 'On Hold'"`
	ProjectID   string   `json:"project_id"  validate:"required"`
	EmployeeIDs []string `json:"assigned_employees" validate:"required,min=1"`
}

type taskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='Not Started' 'In Progress' Completed 'On Hold'"`
}

type reassignRequest struct {
	EmployeeIDs []string `json:"assigned_employees" validate:"required,min=1"`
}

func (r taskRequest) toInput() (ports.TaskInput, error) {
	deadline, err := time.Parse(dateLayout, r.Deadline)
	if err != nil {
		return ports.TaskInput{}, err
	}
	return ports.TaskInput{
		Description: r.Description,
		Deadline:    deadline,
		Status:      domain.WorkStatus(r.Status),
		ProjectID:   r.ProjectID,
		EmployeeIDs: r.EmployeeIDs,
	}, nil
}

func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tasks)
}

// ListByEmployee handles GET /api/tasks/employee/:employeeId. Employees may
// only read their own assignments.
func (h *TaskHandler) ListByEmployee(c echo.Context) error {
	employeeID := c.Param("employeeId")
	if err := requireSelfOrAdmin(c, employeeID); err != nil {
		return err
	}

	tasks, err := h.service.ListByEmployee(c.Request().Context(), employeeID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tasks)
}

func (h *TaskHandler) ListOngoing(c echo.Context) error {
	tasks, err := h.service.ListOngoing(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid deadline")
	}

	task, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.TasksAssignedTotal.Add(float64(len(task.Assignees)))
	return respond(c, http.StatusCreated, task)
}

func (h *TaskHandler) Update(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid deadline")
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("taskId"), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, task)
}

// UpdateStatus handles PUT /api/tasks/:taskId/status. Admins may update any
// task; employees only tasks they are assigned to.
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	var req taskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	task, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateTaskStatusInput{
		TaskID:    c.Param("taskId"),
		Status:    domain.WorkStatus(req.Status),
		ActorID:   userID,
		ActorRole: role,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, task)
}

// Reassign handles PATCH /api/tasks/:taskId/reassign.
func (h *TaskHandler) Reassign(c echo.Context) error {
	var req reassignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Reassign(c.Request().Context(), c.Param("taskId"), req.EmployeeIDs)
	if err != nil {
		return err
	}

	metrics.TasksAssignedTotal.Add(float64(len(task.Assignees)))
	return respond(c, http.StatusOK, task)
}

func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("taskId")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]string{"message": "task deleted"})
}
