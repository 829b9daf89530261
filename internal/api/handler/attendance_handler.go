package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamforge/ems-api/internal/api/metrics"
	"github.com/teamforge/ems-api/internal/core/domain"
	"github.com/teamforge/ems-api/internal/core/ports"
)

type AttendanceHandler struct {
	service ports.AttendanceService
}

func NewAttendanceHandler(service ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

type clockInRequest struct {
	WorkType string `json:"work_type" validate:"omitempty,oneof=office remote hybrid field_work"`
	Notes    string `json:"notes"`
}

// ClockIn handles POST /api/attendance/clockin. An open record conflicts.
func (h *AttendanceHandler) ClockIn(c echo.Context) error {
	var req clockInRequest
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

	workType := domain.WorkType(req.WorkType)
	if workType == "" {
		workType = domain.WorkOffice
	}

	record, err := h.service.ClockIn(c.Request().Context(), ports.ClockInInput{
		EmployeeID: userID,
		WorkType:   workType,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.ClockEventsTotal.WithLabelValues("in").Inc()
	return respond(c, http.StatusCreated, record)
}

// ClockOut handles POST /api/attendance/clockout.
func (h *AttendanceHandler) ClockOut(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	record, err := h.service.ClockOut(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	metrics.ClockEventsTotal.WithLabelValues("out").Inc()
	return respond(c, http.StatusOK, record)
}

// Status handles GET /api/attendance/status.
func (h *AttendanceHandler) Status(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	clockedIn, err := h.service.IsClockedIn(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]bool{"is_clocked_in": clockedIn})
}

// Records handles GET /api/attendance/records/:employeeId with year/month
// query parameters, defaulting to the current month.
func (h *AttendanceHandler) Records(c echo.Context) error {
	employeeID := c.Param("employeeId")
	if err := requireSelfOrAdmin(c, employeeID); err != nil {
		return err
	}

	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()
	if v := c.QueryParam("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		year = parsed
	}
	if v := c.QueryParam("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
		}
		month = time.Month(parsed)
	}

	records, err := h.service.MonthRecords(c.Request().Context(), employeeID, year, month)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, records)
}

// Summary handles GET /api/attendance and reports today's present/absent headcount.
func (h *AttendanceHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, summary)
}

// SummaryByDate handles GET /api/attendance/date/:date for YYYY-MM-DD.
func (h *AttendanceHandler) SummaryByDate(c echo.Context) error {
	day, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	summary, err := h.service.Summary(c.Request().Context(), day)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, summary)
}
