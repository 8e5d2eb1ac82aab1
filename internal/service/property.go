package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/errs"
	"github.com/nyumbahomes/nyumba/internal/lib/geocode"
	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/repository"
	"github.com/nyumbahomes/nyumba/internal/validation"
)

// Geocoder resolves addresses to coordinates. Satisfied by the geocode
// client; faked in tests.
type Geocoder interface {
	Enabled() bool
	Geocode(ctx context.Context, address, city string) (geocode.Result, error)
}

// PropertyService implements listing management and the public browse
// surface.
type PropertyService struct {
	properties repository.PropertyRepository
	geocoder   Geocoder
	logger     *zerolog.Logger
}

// PropertyList is a page of listings together with the total match count
// for the same filter.
type PropertyList struct {
	Data  []model.Property `json:"data"`
	Total int64            `json:"total"`
	Page  int64            `json:"page"`
	Limit int64            `json:"limit"`
}

// NewPropertyService creates a PropertyService.
func NewPropertyService(properties repository.PropertyRepository, geocoder Geocoder, logger *zerolog.Logger) *PropertyService {
	return &PropertyService{
		properties: properties,
		geocoder:   geocoder,
		logger:     logger,
	}
}

// List returns a page of listings matching the filter plus the total count
// of matches. The count ignores pagination so clients can render page
// controls.
func (s *PropertyService) List(ctx context.Context, filter repository.PropertyFilter, opts ListOptions) (PropertyList, error) {
	find, page, limit := opts.findOptions()

	items, err := s.properties.Find(ctx, filter, find)
	if err != nil {
		return PropertyList{}, err
	}

	total, err := s.properties.Count(ctx, filter)
	if err != nil {
		return PropertyList{}, err
	}

	if items == nil {
		items = []model.Property{}
	}

	return PropertyList{
		Data:  items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// Get returns one listing by id. A malformed id behaves like a missing
// row rather than a database error.
func (s *PropertyService) Get(ctx context.Context, id string) (model.Property, error) {
	if !validation.IsValidUUID(id) {
		return model.Property{}, errs.NewNotFoundError("Property not found", true, nil)
	}
	return s.properties.FindByID(ctx, id)
}

// Create stores a new listing. When the caller supplied no coordinates and
// a geocoding provider is configured, the address is resolved before the
// insert; geocoding failure does not block creation.
func (s *PropertyService) Create(ctx context.Context, params repository.CreatePropertyParams) (model.Property, error) {
	if params.Latitude == 0 && params.Longitude == 0 && s.geocoder != nil && s.geocoder.Enabled() {
		result, err := s.geocoder.Geocode(ctx, params.Address, params.City)
		if err != nil {
			s.logger.Warn().Err(err).Str("address", params.Address).Msg("geocoding failed, storing listing without coordinates")
		} else {
			params.Latitude = result.Latitude
			params.Longitude = result.Longitude
			params.PlaceRef = result.PlaceRef
		}
	}

	return s.properties.Create(ctx, params)
}

// Update applies a sparse patch to a listing. Absent fields keep their
// stored values; an empty patch returns the listing unchanged.
func (s *PropertyService) Update(ctx context.Context, id string, patch repository.PropertyPatch) (model.Property, error) {
	if !validation.IsValidUUID(id) {
		return model.Property{}, errs.NewNotFoundError("Property not found", true, nil)
	}
	return s.properties.Update(ctx, id, patch)
}

// Delete removes a listing. Deleting an id that does not exist is not an
// error; inquiries that referenced the listing are left in place.
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if !validation.IsValidUUID(id) {
		return nil
	}

	deleted, err := s.properties.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		s.logger.Info().Str("property_id", id).Msg("property deleted")
	}
	return nil
}
