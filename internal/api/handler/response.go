package handler

import (
	"github.com/labstack/echo/v4"
)

// Envelope is the body shape of every API response, success or failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func success(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Fail renders a failure envelope; data is always null.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Message: message})
}
