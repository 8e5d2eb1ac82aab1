package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nyumbahomes/nyumba/internal/handler"
)

// registerSystemRoutes registers endpoints outside the business API:
// health, docs and the static assets backing the docs page.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/status", h.Health.CheckHealth)

	e.Static("/static", "static")

	e.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
