package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/nyumbahomes/nyumba/internal/errs"
	"github.com/nyumbahomes/nyumba/internal/middleware"
	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/server"
	"github.com/nyumbahomes/nyumba/internal/service"
	"github.com/nyumbahomes/nyumba/internal/validation"
)

// AuthHandler serves the back-office login and session endpoints.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// LoginRequest carries back-office credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Login serves POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (service.LoginResult, error) {
	return h.auth.Login(c.Request().Context(), req.Email, req.Password)
}

// MeRequest has no fields; the identity comes from the auth middleware.
type MeRequest struct{}

func (r *MeRequest) Validate() error {
	return nil
}

// Me serves GET /api/auth/me.
func (h *AuthHandler) Me(c echo.Context, req *MeRequest) (model.Admin, error) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return model.Admin{}, errs.NewUnauthorizedError("Unauthorized", false)
	}
	return h.auth.Me(c.Request().Context(), id)
}
