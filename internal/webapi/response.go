package webapi

import (
	"github.com/labstack/echo/v4"
)

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(200, apiResponse{Success: true, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, apiResponse{Success: false, Error: message})
}
