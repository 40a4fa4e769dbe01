package http

import "github.com/labstack/echo/v4"

// Envelope is the uniform response shape for every API response, success
// or error: {status, message, data}.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{Status: "success", Message: message, Data: data})
}

func fail(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{Status: "error", Message: message, Data: data})
}
