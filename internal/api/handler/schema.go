package handler

import "github.com/labstack/echo/v4"

// successResponse is the envelope wrapping every successful JSON body.
// Errors use the central error handler's envelope instead.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// listResponse adds a total count for paginated collections.
type listResponse struct {
	Success bool  `json:"success"`
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, successResponse{Success: true, Data: data})
}

func respondList(c echo.Context, code int, data any, total int64) error {
	return c.JSON(code, listResponse{Success: true, Data: data, Total: total})
}
