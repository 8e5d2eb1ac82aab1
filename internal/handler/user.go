package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/nyumbahomes/nyumba/internal/errs"
	"github.com/nyumbahomes/nyumba/internal/identity"
	"github.com/nyumbahomes/nyumba/internal/middleware"
	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/server"
	"github.com/nyumbahomes/nyumba/internal/service"
	"github.com/nyumbahomes/nyumba/internal/validation"
)

// UserHandler serves end-user profile and saved-listing endpoints. All
// routes sit behind the hosted-identity guard.
type UserHandler struct {
	Handler
	users *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

func callerIdentity(c echo.Context) (identity.Identity, error) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		return identity.Identity{}, errs.NewUnauthorizedError("Unauthorized", false)
	}
	return id, nil
}

// UserMeRequest has no fields; the identity comes from the auth
// middleware.
type UserMeRequest struct{}

func (r *UserMeRequest) Validate() error {
	return nil
}

// Me serves GET /api/users/me. First sight of a hosted identity provisions
// the local profile row.
func (h *UserHandler) Me(c echo.Context, req *UserMeRequest) (model.User, error) {
	id, err := callerIdentity(c)
	if err != nil {
		return model.User{}, err
	}
	return h.users.EnsureFromIdentity(c.Request().Context(), id)
}

// UpdateProfileRequest is a sparse update to the caller's profile.
type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone *string `json:"phone" validate:"omitempty,e164"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// UpdateProfile serves PATCH /api/users/me.
func (h *UserHandler) UpdateProfile(c echo.Context, req *UpdateProfileRequest) (model.User, error) {
	id, err := callerIdentity(c)
	if err != nil {
		return model.User{}, err
	}
	return h.users.UpdateProfile(c.Request().Context(), id, service.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
}

// SavedListRequest has no fields; the identity comes from the auth
// middleware.
type SavedListRequest struct{}

func (r *SavedListRequest) Validate() error {
	return nil
}

// SavedList serves GET /api/users/me/saved, returning the caller's saved
// listings as full records.
func (h *UserHandler) SavedList(c echo.Context, req *SavedListRequest) ([]model.Property, error) {
	id, err := callerIdentity(c)
	if err != nil {
		return nil, err
	}
	return h.users.SavedProperties(c.Request().Context(), id)
}

// SavedPropertyRequest identifies a listing in the caller's saved list.
type SavedPropertyRequest struct {
	PropertyID string `param:"propertyId" validate:"required"`
}

func (r *SavedPropertyRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// SaveProperty serves POST /api/users/me/saved/:propertyId.
func (h *UserHandler) SaveProperty(c echo.Context, req *SavedPropertyRequest) (model.User, error) {
	id, err := callerIdentity(c)
	if err != nil {
		return model.User{}, err
	}
	return h.users.SaveProperty(c.Request().Context(), id, req.PropertyID)
}

// UnsaveProperty serves DELETE /api/users/me/saved/:propertyId.
func (h *UserHandler) UnsaveProperty(c echo.Context, req *SavedPropertyRequest) (model.User, error) {
	id, err := callerIdentity(c)
	if err != nil {
		return model.User{}, err
	}
	return h.users.UnsaveProperty(c.Request().Context(), id, req.PropertyID)
}
