package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/nyumbahomes/nyumba/internal/errs"
	"github.com/nyumbahomes/nyumba/internal/server"
)

// OpenAPIHandler serves the interactive API reference.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI renders the documentation page backed by
// /static/openapi.json.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	htmlPath := filepath.Join("static", "openapi.html")

	content, err := os.ReadFile(htmlPath)
	if err != nil {
		h.server.Logger.Error().Err(err).Str("path", htmlPath).Msg("Failed to read OpenAPI UI page")
		return errs.NewInternalServerError()
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, content)
}
