package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamforge/ems-api/internal/api/metrics"
	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

type LeaveHandler struct {
	service ports.LeaveService
}

func NewLeaveHandler(service ports.LeaveService) *LeaveHandler {
	return &LeaveHandler{service: service}
}

type submitLeaveRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"`
	LeaveType string `json:"leave_type" validate:"omitempty,oneof=annual sick personal emergency other"`
}

type decideLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// Submit handles POST /api/leave.
func (h *LeaveHandler) Submit(c echo.Context) error {
	var req submitLeaveRequest
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

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start date")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end date")
	}

	leave, err := h.service.Submit(c.Request().Context(), ports.SubmitLeaveInput{
		EmployeeID: userID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		LeaveType:  domain.LeaveType(req.LeaveType),
	})
	if err != nil {
		return err
	}

	metrics.LeaveRequestsTotal.WithLabelValues(string(leave.LeaveType)).Inc()
	return respond(c, http.StatusCreated, leave)
}

// MyRequests handles GET /api/leave/my-requests.
func (h *LeaveHandler) MyRequests(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	requests, err := h.service.MyRequests(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, requests)
}

// Pending handles GET /api/leave/pending.
func (h *LeaveHandler) Pending(c echo.Context) error {
	requests, err := h.service.Pending(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, requests)
}

// Decide handles PATCH /api/leave/:id/status.
func (h *LeaveHandler) Decide(c echo.Context) error {
	var req decideLeaveRequest
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

	leave, err := h.service.Decide(c.Request().Context(), ports.DecideLeaveInput{
		RequestID:  c.Param("id"),
		Status:     domain.LeaveStatus(req.Status),
		ReviewerID: userID,
	})
	if err != nil {
		return err
	}

	metrics.LeaveDecisionsTotal.WithLabelValues(string(leave.Status)).Inc()
	return respond(c, http.StatusOK, leave)
}
