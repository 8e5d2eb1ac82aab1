package handler

import (
	"github.com/nyumbahomes/nyumba/internal/server"
	"github.com/nyumbahomes/nyumba/internal/service"
)

// Handlers is a container that groups all HTTP handlers so router setup
// receives one wired object.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Auth     *AuthHandler
	Property *PropertyHandler
	Inquiry  *InquiryHandler
	Admin    *AdminHandler
	User     *UserHandler
	Upload   *UploadHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Auth:     NewAuthHandler(s, services.Auth),
		Property: NewPropertyHandler(s, services.Property),
		Inquiry:  NewInquiryHandler(s, services.Inquiry),
		Admin:    NewAdminHandler(s, services.Admin),
		User:     NewUserHandler(s, services.User),
		Upload:   NewUploadHandler(s, services.Upload),
	}
}
