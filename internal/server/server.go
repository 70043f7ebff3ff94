// Package server exposes the portfolio analysis pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/recuperacredito/recupera-go/config"
	"github.com/recuperacredito/recupera-go/internal/dataset"
)

var metricsOnce sync.Once

// Server is the HTTP surface of the analysis pipeline.
type Server struct {
	echo *echo.Echo
	env  EnvConfig
}

// New builds a server over the given source reader. Portfolio endpoints
// read from the reader unless a query names an uploaded dataset.
func New(cfg config.Config, env EnvConfig, reader dataset.SourceReader) *Server {
	metricsOnce.Do(initMetrics)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	handler := NewPortfolioHandler(cfg, reader, NewDatasetStore())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/portfolio/summary", handler.Summary)
	api.GET("/portfolio/bands", handler.Bands)
	api.GET("/portfolio/histogram", handler.Histogram)
	api.GET("/portfolio/aging", handler.Aging)
	api.GET("/portfolio/customers", handler.Customers)
	api.GET("/portfolio/domain", handler.Domain)
	api.POST("/datasets", handler.Upload)

	return &Server{echo: e, env: env}
}

// Start blocks serving HTTP until Shutdown or a fatal error.
func (s *Server) Start() error {
	return s.echo.Start(":" + s.env.Port)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
