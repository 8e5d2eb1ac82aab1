// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups, mapping
// specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyumbahomes/nyumba/internal/handler"
	"github.com/nyumbahomes/nyumba/internal/middleware"
	"github.com/nyumbahomes/nyumba/internal/server"
)

// Setup builds the Echo instance: global middleware chain, the error
// funnel, system routes and the API groups.
func Setup(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// Order matters: request id first so every later stage can log it,
	// tracing before the context enhancer so trace metadata lands in the
	// request-scoped logger.
	e.Use(middleware.RequestID())
	e.Use(m.Tracing.NewRelicMiddleware())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Tracing.EnhanceTracing())
	e.Use(m.Global.CORS())
	e.Use(m.Global.RequestLogger())
	e.Use(m.Global.Recover())
	e.Use(m.Global.Secure())

	registerSystemRoutes(e, h)
	registerAPIRoutes(e, h, m)

	return e
}

func registerAPIRoutes(e *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	api := e.Group("/api")

	// Public browse surface.
	api.GET("/properties", handler.Handle(h.Property.Handler, h.Property.List, http.StatusOK))
	api.GET("/properties/:id", handler.Handle(h.Property.Handler, h.Property.Get, http.StatusOK))

	// Public inquiry submission, throttled per client IP.
	api.POST("/inquiries",
		handler.Handle(h.Inquiry.Handler, h.Inquiry.Create, http.StatusCreated),
		m.RateLimit.LimitPublicWrites("create_inquiry", 1, 5),
	)

	// Back-office authentication.
	api.POST("/auth/login", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK))

	// Back office: listing management, inquiry triage, media upload.
	admin := api.Group("", m.Auth.RequireAdmin)
	admin.GET("/auth/me", handler.Handle(h.Auth.Handler, h.Auth.Me, http.StatusOK))

	admin.POST("/properties", handler.Handle(h.Property.Handler, h.Property.Create, http.StatusCreated))
	admin.PATCH("/properties/:id", handler.Handle(h.Property.Handler, h.Property.Update, http.StatusOK))
	admin.DELETE("/properties/:id", handler.HandleNoContent(h.Property.Handler, h.Property.Delete, http.StatusNoContent))

	admin.GET("/inquiries", handler.Handle(h.Inquiry.Handler, h.Inquiry.List, http.StatusOK))
	admin.GET("/inquiries/:id", handler.Handle(h.Inquiry.Handler, h.Inquiry.Get, http.StatusOK))
	admin.PATCH("/inquiries/:id", handler.Handle(h.Inquiry.Handler, h.Inquiry.Update, http.StatusOK))
	admin.DELETE("/inquiries/:id", handler.HandleNoContent(h.Inquiry.Handler, h.Inquiry.Delete, http.StatusNoContent))

	admin.POST("/uploads", h.Upload.Upload)

	// Admin account management. Creating and deleting accounts is
	// reserved for super admins.
	admins := api.Group("/admins", m.Auth.RequireAdmin)
	admins.POST("", handler.Handle(h.Admin.Handler, h.Admin.Create, http.StatusCreated), m.Auth.RequireSuperAdmin)
	admins.GET("", handler.Handle(h.Admin.Handler, h.Admin.List, http.StatusOK))
	admins.GET("/:id", handler.Handle(h.Admin.Handler, h.Admin.Get, http.StatusOK))
	admins.PATCH("/:id", handler.Handle(h.Admin.Handler, h.Admin.Update, http.StatusOK))
	admins.DELETE("/:id", handler.HandleNoContent(h.Admin.Handler, h.Admin.Delete, http.StatusNoContent), m.Auth.RequireSuperAdmin)

	// End-user accounts behind hosted identity sessions.
	users := api.Group("/users", m.Auth.RequireUser)
	users.GET("/me", handler.Handle(h.User.Handler, h.User.Me, http.StatusOK))
	users.PATCH("/me", handler.Handle(h.User.Handler, h.User.UpdateProfile, http.StatusOK))
	users.GET("/me/saved", handler.Handle(h.User.Handler, h.User.SavedList, http.StatusOK))
	users.POST("/me/saved/:propertyId", handler.Handle(h.User.Handler, h.User.SaveProperty, http.StatusOK))
	users.DELETE("/me/saved/:propertyId", handler.Handle(h.User.Handler, h.User.UnsaveProperty, http.StatusOK))
}
