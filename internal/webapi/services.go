package webapi

import (
	"github.com/labstack/echo/v4"

	"github.com/securevista/securevista/internal/domain"
)

func (s *WebServer) listServices(c echo.Context) error {
	return ok(c, domain.ServiceCatalog)
}
