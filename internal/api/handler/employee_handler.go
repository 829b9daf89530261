package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teamforge/ems-api/internal/core/ports"
)

// EmployeeHandler handles admin-side employee management plus the self view.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

type createEmployeeRequest struct {
	Name       string  `json:"name"        validate:"required"`
	Email      string  `json:"email"       validate:"required,email"`
	Password   string  `json:"password"    validate:"required,min=6"`
	Address    string  `json:"address"`
	Salary     float64 `json:"salary"      validate:"gte=0"`
	Image      string  `json:"image"`
	CategoryID string  `json:"category_id" validate:"required"`
}

type updateEmployeeRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email" validate:"omitempty,email"`
	Address    *string  `json:"address"`
	Salary     *float64 `json:"salary" validate:"omitempty,gte=0"`
	Image      *string  `json:"image"`
	CategoryID *string  `json:"category_id"`
}

// List handles GET /api/employee with skip/limit pagination.
func (h *EmployeeHandler) List(c echo.Context) error {
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	result, err := h.service.List(c.Request().Context(), ports.ListEmployeesInput{Skip: skip, Limit: limit})
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, result.Items, result.Total)
}

// Get handles GET /api/employee/detail/:id. Employees may only read their
// own record.
func (h *EmployeeHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if err := requireSelfOrAdmin(c, id); err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// Create handles POST /api/employee.
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Address:    req.Address,
		Salary:     req.Salary,
		Image:      req.Image,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, user)
}

// Update handles PUT /api/employee/:id.
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Address:    req.Address,
		Salary:     req.Salary,
		Image:      req.Image,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// Delete handles DELETE /api/employee/:id.
func (h *EmployeeHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]string{"message": "employee deleted"})
}
