package handler

import (
	"github.com/labstack/echo/v4"
)

// envelope is the standard success wrapper: {"success": true, "data": ...}.
// Error envelopes are rendered centrally by the API error handler.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, envelope{Success: true, Message: message})
}
