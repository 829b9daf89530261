package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type projectRequest struct {
	Title          string `json:"title"           validate:"required"`
	Description    string `json:"description"`
	Status         string `json:"status"          validate:"omitempty,oneof='Not Started' 'In Progress' Completed 'On Hold'"`
	Priority       string `json:"priority"        validate:"omitempty,oneof=Low Medium High Critical"`
	StartDate      string `json:"start_date"      validate:"required,datetime=2006-01-02"`
	CompletionDate string `json:"completion_date" validate:"omitempty,datetime=2006-01-02"`
	ClientID       string `json:"client_id"       validate:"required"`
}

func (r projectRequest) toInput(createdBy string) (ports.ProjectInput, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return ports.ProjectInput{}, err
	}
	var completion time.Time
	if r.CompletionDate != "" {
		if completion, err = time.Parse(dateLayout, r.CompletionDate); err != nil {
			return ports.ProjectInput{}, err
		}
	}
	return ports.ProjectInput{
		Title:          r.Title,
		Description:    r.Description,
		Status:         domain.WorkStatus(r.Status),
		Priority:       domain.Priority(r.Priority),
		StartDate:      start,
		CompletionDate: completion,
		ClientID:       r.ClientID,
		CreatedBy:      createdBy,
	}, nil
}

func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, projects)
}

// ListOngoing handles GET /api/projects/ongoing.
func (h *ProjectHandler) ListOngoing(c echo.Context) error {
	projects, err := h.service.ListOngoing(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, project)
}

func (h *ProjectHandler) Create(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	in, err := req.toInput(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	project, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, project)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in, err := req.toInput("")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	project, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]string{"message": "project deleted"})
}
