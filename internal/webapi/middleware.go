package webapi

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// noCacheMiddleware marks every API response uncacheable so that clients and
// proxies always see the latest collection snapshot.
func noCacheMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		return next(c)
	}
}

func (s *WebServer) requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rid := strings.TrimSpace(c.Request().Header.Get(echo.HeaderXRequestID))
		if rid == "" {
			rid = s.app.RequestID()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, rid)
		return next(c)
	}
}
