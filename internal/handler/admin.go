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

// AdminHandler serves back-office account management. Provisioning and
// removal of accounts additionally require the super-admin claim.
type AdminHandler struct {
	Handler
	admins *service.AdminService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(s *server.Server, admins *service.AdminService) *AdminHandler {
	return &AdminHandler{
		Handler: NewHandler(s),
		admins:  admins,
	}
}

// CreateAdminRequest provisions a back-office account.
type CreateAdminRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=12"`
	SuperAdmin bool   `json:"superAdmin"`
}

func (r *CreateAdminRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Create serves POST /api/admins.
func (h *AdminHandler) Create(c echo.Context, req *CreateAdminRequest) (model.Admin, error) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		return model.Admin{}, errs.NewUnauthorizedError("Unauthorized", false)
	}

	return h.admins.Create(c.Request().Context(), caller, service.CreateAdminInput{
		Email:      req.Email,
		Password:   req.Password,
		SuperAdmin: req.SuperAdmin,
	})
}

// ListAdminsRequest pages through back-office accounts.
type ListAdminsRequest struct {
	SortBy    string `query:"sortBy" validate:"omitempty,oneof=createdAt updatedAt email"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
	Page      int64  `query:"page" validate:"omitempty,gte=1"`
	Limit     int64  `query:"limit" validate:"omitempty,gte=0"`
}

func (r *ListAdminsRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// List serves GET /api/admins.
func (h *AdminHandler) List(c echo.Context, req *ListAdminsRequest) (service.AdminList, error) {
	return h.admins.List(c.Request().Context(), service.ListOptions{
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      req.Page,
		Limit:     req.Limit,
	})
}

// GetAdminRequest identifies one back-office account.
type GetAdminRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *GetAdminRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Get serves GET /api/admins/:id.
func (h *AdminHandler) Get(c echo.Context, req *GetAdminRequest) (model.Admin, error) {
	return h.admins.Get(c.Request().Context(), req.ID)
}

// UpdateAdminRequest is a sparse update to a back-office account.
type UpdateAdminRequest struct {
	ID         string  `param:"id" validate:"required"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Password   *string `json:"password" validate:"omitempty,min=12"`
	SuperAdmin *bool   `json:"superAdmin"`
}

func (r *UpdateAdminRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Update serves PATCH /api/admins/:id.
func (h *AdminHandler) Update(c echo.Context, req *UpdateAdminRequest) (model.Admin, error) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		return model.Admin{}, errs.NewUnauthorizedError("Unauthorized", false)
	}

	return h.admins.Update(c.Request().Context(), caller, req.ID, service.UpdateAdminInput{
		Email:      req.Email,
		Password:   req.Password,
		SuperAdmin: req.SuperAdmin,
	})
}

// DeleteAdminRequest identifies the account to remove.
type DeleteAdminRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *DeleteAdminRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Delete serves DELETE /api/admins/:id.
func (h *AdminHandler) Delete(c echo.Context, req *DeleteAdminRequest) error {
	return h.admins.Delete(c.Request().Context(), req.ID)
}
