package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nyumbahomes/nyumba/internal/errs"
	"github.com/nyumbahomes/nyumba/internal/middleware"
	"github.com/nyumbahomes/nyumba/internal/server"
	"github.com/nyumbahomes/nyumba/internal/service"
)

// maxUploadBytes caps listing image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadHandler pushes listing images to the external media store.
type UploadHandler struct {
	Handler
	uploads *service.UploadService
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(s *server.Server, uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{
		Handler: NewHandler(s),
		uploads: uploads,
	}
}

// UploadResponse carries the stored file's public URL.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload serves POST /api/uploads. Multipart parsing does not fit the
// typed bind-and-validate pipeline, so this handler reads the form
// directly.
func (h *UploadHandler) Upload(c echo.Context) error {
	logger := middleware.GetLogger(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errs.NewBadRequestError("A file field is required", true, nil, nil, nil)
	}
	if fileHeader.Size > maxUploadBytes {
		return errs.NewBadRequestError("File exceeds the 10MB limit", true, nil, nil, nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Msg("failed to open uploaded file")
		return errs.NewInternalServerError()
	}
	defer file.Close()

	url, err := h.uploads.Upload(c.Request().Context(), fileHeader.Filename, file)
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("media upload failed")
		return errs.NewInternalServerError()
	}

	return c.JSON(http.StatusCreated, UploadResponse{URL: url})
}
