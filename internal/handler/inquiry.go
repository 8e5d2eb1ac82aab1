package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/repository"
	"github.com/nyumbahomes/nyumba/internal/server"
	"github.com/nyumbahomes/nyumba/internal/service"
	"github.com/nyumbahomes/nyumba/internal/validation"
)

// InquiryHandler serves the public contact flow and the back-office
// inquiry pipeline.
type InquiryHandler struct {
	Handler
	inquiries *service.InquiryService
}

// NewInquiryHandler constructs an InquiryHandler.
func NewInquiryHandler(s *server.Server, inquiries *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{
		Handler:   NewHandler(s),
		inquiries: inquiries,
	}
}

// CreateInquiryRequest is a visitor's contact submission.
type CreateInquiryRequest struct {
	PropertyID       string `json:"propertyId" validate:"required"`
	Name             string `json:"name" validate:"required,min=2,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"omitempty,e164"`
	Message          string `json:"message" validate:"required,min=5,max=2000"`
	PreferredContact string `json:"preferredContact" validate:"required,oneof=whatsapp phone email"`
}

func (r *CreateInquiryRequest) Validate() error {
	if err := validation.Validator.Struct(r); err != nil {
		return err
	}
	// Reaching someone by phone or WhatsApp needs a number.
	if r.PreferredContact != string(model.ContactChannelEmail) && r.Phone == "" {
		return validation.CustomValidationErrors{{
			Field:   "phone",
			Message: "is required for phone or whatsapp contact",
		}}
	}
	return nil
}

// Create serves POST /api/inquiries.
func (h *InquiryHandler) Create(c echo.Context, req *CreateInquiryRequest) (model.Inquiry, error) {
	return h.inquiries.Create(c.Request().Context(), service.CreateInquiryInput{
		PropertyID:       req.PropertyID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Message:          req.Message,
		PreferredContact: model.ContactChannel(req.PreferredContact),
	})
}

// ListInquiriesRequest carries the back-office inquiry filters.
type ListInquiriesRequest struct {
	PropertyID string `query:"propertyId"`
	Status     string `query:"status" validate:"omitempty,oneof=pending contacted resolved"`
	Email      string `query:"email" validate:"omitempty,email"`
	Verified   *bool  `query:"verified"`
	SortBy     string `query:"sortBy" validate:"omitempty,oneof=createdAt updatedAt status name"`
	SortOrder  string `query:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
	Page       int64  `query:"page" validate:"omitempty,gte=1"`
	Limit      int64  `query:"limit" validate:"omitempty,gte=0"`
}

func (r *ListInquiriesRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// List serves GET /api/inquiries.
func (h *InquiryHandler) List(c echo.Context, req *ListInquiriesRequest) (service.InquiryList, error) {
	filter := repository.InquiryFilter{
		PropertyID: req.PropertyID,
		Status:     model.InquiryStatus(req.Status),
		Email:      req.Email,
		Verified:   req.Verified,
	}

	opts := service.ListOptions{
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      req.Page,
		Limit:     req.Limit,
	}

	return h.inquiries.List(c.Request().Context(), filter, opts)
}

// GetInquiryRequest identifies one inquiry.
type GetInquiryRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *GetInquiryRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Get serves GET /api/inquiries/:id.
func (h *InquiryHandler) Get(c echo.Context, req *GetInquiryRequest) (model.Inquiry, error) {
	return h.inquiries.Get(c.Request().Context(), req.ID)
}

// UpdateInquiryRequest moves an inquiry through the pipeline and lets the
// back office mark its contact details as verified.
type UpdateInquiryRequest struct {
	ID       string  `param:"id" validate:"required"`
	Status   *string `json:"status" validate:"omitempty,oneof=pending contacted resolved"`
	Verified *bool   `json:"verified"`
}

func (r *UpdateInquiryRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Update serves PATCH /api/inquiries/:id.
func (h *InquiryHandler) Update(c echo.Context, req *UpdateInquiryRequest) (model.Inquiry, error) {
	var status *model.InquiryStatus
	if req.Status != nil {
		s := model.InquiryStatus(*req.Status)
		status = &s
	}

	return h.inquiries.Update(c.Request().Context(), req.ID, service.UpdateInquiryInput{
		Status:   status,
		Verified: req.Verified,
	})
}

// DeleteInquiryRequest identifies the inquiry to remove.
type DeleteInquiryRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *DeleteInquiryRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Delete serves DELETE /api/inquiries/:id.
func (h *InquiryHandler) Delete(c echo.Context, req *DeleteInquiryRequest) error {
	return h.inquiries.Delete(c.Request().Context(), req.ID)
}
