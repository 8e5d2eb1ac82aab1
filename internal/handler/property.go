package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/repository"
	"github.com/nyumbahomes/nyumba/internal/server"
	"github.com/nyumbahomes/nyumba/internal/service"
	"github.com/nyumbahomes/nyumba/internal/validation"
)

// PropertyHandler serves the public browse surface and the back-office
// listing management endpoints.
type PropertyHandler struct {
	Handler
	properties *service.PropertyService
}

// NewPropertyHandler constructs a PropertyHandler.
func NewPropertyHandler(s *server.Server, properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		Handler:    NewHandler(s),
		properties: properties,
	}
}

// ListPropertiesRequest carries the browse filters, all optional. Location
// matches city or address loosely; city and county match exactly.
type ListPropertiesRequest struct {
	Location     string   `query:"location"`
	City         string   `query:"city"`
	County       string   `query:"county"`
	Search       string   `query:"search"`
	PropertyType string   `query:"propertyType" validate:"omitempty,oneof=apartment house villa studio penthouse"`
	MinPrice     *int64   `query:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice     *int64   `query:"maxPrice" validate:"omitempty,gte=0"`
	Bedrooms     *int     `query:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms    *int     `query:"bathrooms" validate:"omitempty,gte=0"`
	Amenities    []string `query:"amenities"`
	Available    *bool    `query:"available"`
	Featured     *bool    `query:"featured"`
	SortBy       string   `query:"sortBy" validate:"omitempty,oneof=price bedrooms bathrooms areaSqM title createdAt updatedAt"`
	SortOrder    string   `query:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
	Page         int64    `query:"page" validate:"omitempty,gte=1"`
	Limit        int64    `query:"limit" validate:"omitempty,gte=0"`
}

func (r *ListPropertiesRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// List serves GET /api/properties.
func (h *PropertyHandler) List(c echo.Context, req *ListPropertiesRequest) (service.PropertyList, error) {
	filter := repository.PropertyFilter{
		Location:     req.Location,
		City:         req.City,
		County:       req.County,
		Search:       req.Search,
		PropertyType: model.PropertyType(req.PropertyType),
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Amenities:    req.Amenities,
		Available:    req.Available,
		Featured:     req.Featured,
	}

	opts := service.ListOptions{
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      req.Page,
		Limit:     req.Limit,
	}

	return h.properties.List(c.Request().Context(), filter, opts)
}

// GetPropertyRequest identifies one listing.
type GetPropertyRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *GetPropertyRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Get serves GET /api/properties/:id.
func (h *PropertyHandler) Get(c echo.Context, req *GetPropertyRequest) (model.Property, error) {
	return h.properties.Get(c.Request().Context(), req.ID)
}

// CreatePropertyRequest is the admin payload for a new listing.
type CreatePropertyRequest struct {
	Title        string   `json:"title" validate:"required,min=3,max=200"`
	Description  string   `json:"description" validate:"required"`
	Price        int64    `json:"price" validate:"required,gte=0"`
	Address      string   `json:"address" validate:"required"`
	City         string   `json:"city" validate:"required"`
	County       string   `json:"county" validate:"required"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	PropertyType string   `json:"propertyType" validate:"required,oneof=apartment house villa studio penthouse"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int      `json:"bathrooms" validate:"gte=0"`
	AreaSqM      float64  `json:"areaSqM" validate:"gte=0"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images" validate:"omitempty,dive,url"`
	Featured     bool     `json:"featured"`
	Available    *bool    `json:"available"`
}

func (r *CreatePropertyRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Create serves POST /api/properties. New listings default to available
// unless the payload says otherwise.
func (h *PropertyHandler) Create(c echo.Context, req *CreatePropertyRequest) (model.Property, error) {
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	return h.properties.Create(c.Request().Context(), repository.CreatePropertyParams{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Address:      req.Address,
		City:         req.City,
		County:       req.County,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		PropertyType: model.PropertyType(req.PropertyType),
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		AreaSqM:      req.AreaSqM,
		Amenities:    req.Amenities,
		Images:       req.Images,
		Featured:     req.Featured,
		Available:    available,
	})
}

// UpdatePropertyRequest is a sparse patch; absent fields keep their stored
// values.
type UpdatePropertyRequest struct {
	ID           string    `param:"id" validate:"required"`
	Title        *string   `json:"title" validate:"omitempty,min=3,max=200"`
	Description  *string   `json:"description"`
	Price        *int64    `json:"price" validate:"omitempty,gte=0"`
	Address      *string   `json:"address"`
	City         *string   `json:"city"`
	County       *string   `json:"county"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	PropertyType *string   `json:"propertyType" validate:"omitempty,oneof=apartment house villa studio penthouse"`
	Bedrooms     *int      `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms    *int      `json:"bathrooms" validate:"omitempty,gte=0"`
	AreaSqM      *float64  `json:"areaSqM" validate:"omitempty,gte=0"`
	Amenities    *[]string `json:"amenities"`
	Images       *[]string `json:"images" validate:"omitempty,dive,url"`
	Featured     *bool     `json:"featured"`
	Available    *bool     `json:"available"`
}

func (r *UpdatePropertyRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Update serves PATCH /api/properties/:id.
func (h *PropertyHandler) Update(c echo.Context, req *UpdatePropertyRequest) (model.Property, error) {
	patch := repository.PropertyPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Address:     req.Address,
		City:        req.City,
		County:      req.County,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqM:     req.AreaSqM,
		Amenities:   req.Amenities,
		Images:      req.Images,
		Featured:    req.Featured,
		Available:   req.Available,
	}
	if req.PropertyType != nil {
		pt := model.PropertyType(*req.PropertyType)
		patch.PropertyType = &pt
	}

	return h.properties.Update(c.Request().Context(), req.ID, patch)
}

// DeletePropertyRequest identifies the listing to remove.
type DeletePropertyRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *DeletePropertyRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// Delete serves DELETE /api/properties/:id.
func (h *PropertyHandler) Delete(c echo.Context, req *DeletePropertyRequest) error {
	return h.properties.Delete(c.Request().Context(), req.ID)
}
