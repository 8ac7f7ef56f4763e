// Package webapi exposes the repositories over a small JSON protocol. Every
// response carries cache-suppression headers because the object store has no
// native freshness guarantee and intermediaries must not serve stale
// snapshots.
package webapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/securevista/securevista/internal/app"
)

type WebServer struct {
	app  app.AppContext
	root *echo.Echo
}

func NewWebServer(application app.AppContext) *WebServer {
	s := &WebServer{app: application, root: echo.New()}
	s.root.HideBanner = true
	s.root.Use(middleware.Recover())
	s.root.Use(s.requestIDMiddleware)
	s.root.Use(echoprometheus.NewMiddleware("securevista"))
	s.initRoutes()
	return s
}

func (s *WebServer) initRoutes() {
	s.root.GET("/metrics", echoprometheus.NewHandler())
	s.root.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := s.root.Group("/api", noCacheMiddleware)

	api.GET("/products", s.listProducts)
	api.GET("/products/featured", s.listFeaturedProducts)
	api.GET("/products/:id", s.getProduct)
	api.POST("/products", s.saveProducts)
	api.PUT("/products", s.updateProduct)

	api.GET("/messages", s.listMessages)
	api.POST("/messages", s.createMessage)
	api.PUT("/messages", s.updateMessage)
	api.DELETE("/messages", s.deleteMessage)

	api.GET("/services", s.listServices)

	admin := api.Group("/admin")
	admin.POST("/login", s.adminLogin)

	protected := admin.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(s.app.Config().Web.Secret),
	}))
	protected.GET("/export/products.csv", s.exportProducts)
	protected.GET("/export/messages.csv", s.exportMessages)
	protected.GET("/summary", s.adminSummary)
	protected.GET("/status", s.adminStatus)
}

// Echo exposes the router, used by handler tests.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) Start() error {
	cfg := s.app.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("starting web server on %s", addr)
	return s.root.Start(addr)
}
