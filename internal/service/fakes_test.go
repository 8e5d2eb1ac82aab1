package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/lib/geocode"
	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/repository"
)

var testLogger = zerolog.Nop()

// fakePropertyRepository is an in-memory PropertyRepository. It applies
// the subset of filters the tests exercise.
type fakePropertyRepository struct {
	items []model.Property
}

func (f *fakePropertyRepository) matches(p model.Property, filter repository.PropertyFilter) bool {
	if len(filter.IDs) > 0 {
		found := false
		for _, id := range filter.IDs {
			if id == p.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.City != "" && p.City != filter.City {
		return false
	}
	if filter.PropertyType != "" && p.PropertyType != filter.PropertyType {
		return false
	}
	if filter.MinPrice != nil && p.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
		return false
	}
	if filter.Bedrooms != nil && p.Bedrooms != *filter.Bedrooms {
		return false
	}
	if filter.Available != nil && p.Available != *filter.Available {
		return false
	}
	if filter.Featured != nil && p.Featured != *filter.Featured {
		return false
	}
	return true
}

func (f *fakePropertyRepository) filtered(filter repository.PropertyFilter) []model.Property {
	var out []model.Property
	for _, p := range f.items {
		if f.matches(p, filter) {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakePropertyRepository) Find(_ context.Context, filter repository.PropertyFilter, opts repository.FindOptions) ([]model.Property, error) {
	matched := f.filtered(filter)
	if opts.Skip >= int64(len(matched)) {
		return nil, nil
	}
	matched = matched[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < int64(len(matched)) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (f *fakePropertyRepository) FindByID(_ context.Context, id string) (model.Property, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Property{}, fmt.Errorf("table:properties: %w", pgx.ErrNoRows)
}

func (f *fakePropertyRepository) FindOne(ctx context.Context, filter repository.PropertyFilter) (model.Property, error) {
	matched := f.filtered(filter)
	if len(matched) == 0 {
		return model.Property{}, fmt.Errorf("table:properties: %w", pgx.ErrNoRows)
	}
	return matched[0], nil
}

func (f *fakePropertyRepository) Count(_ context.Context, filter repository.PropertyFilter) (int64, error) {
	return int64(len(f.filtered(filter))), nil
}

func (f *fakePropertyRepository) Create(_ context.Context, params repository.CreatePropertyParams) (model.Property, error) {
	now := time.Now()
	p := model.Property{
		ID:           uuid.NewString(),
		Title:        params.Title,
		Description:  params.Description,
		Price:        params.Price,
		Address:      params.Address,
		City:         params.City,
		County:       params.County,
		Latitude:     params.Latitude,
		Longitude:    params.Longitude,
		PlaceRef:     params.PlaceRef,
		PropertyType: params.PropertyType,
		Bedrooms:     params.Bedrooms,
		Bathrooms:    params.Bathrooms,
		AreaSqM:      params.AreaSqM,
		Amenities:    params.Amenities,
		Images:       params.Images,
		Featured:     params.Featured,
		Available:    params.Available,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.items = append(f.items, p)
	return p, nil
}

func (f *fakePropertyRepository) Update(ctx context.Context, id string, patch repository.PropertyPatch) (model.Property, error) {
	for i, p := range f.items {
		if p.ID != id {
			continue
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Available != nil {
			p.Available = *patch.Available
		}
		if patch.Amenities != nil {
			p.Amenities = *patch.Amenities
		}
		f.items[i] = p
		return p, nil
	}
	return model.Property{}, fmt.Errorf("table:properties: %w", pgx.ErrNoRows)
}

func (f *fakePropertyRepository) Delete(_ context.Context, id string) (bool, error) {
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeInquiryRepository is an in-memory InquiryRepository.
type fakeInquiryRepository struct {
	items []model.Inquiry
}

func (f *fakeInquiryRepository) matches(iq model.Inquiry, filter repository.InquiryFilter) bool {
	if filter.PropertyID != "" && iq.PropertyID != filter.PropertyID {
		return false
	}
	if filter.Status != "" && iq.Status != filter.Status {
		return false
	}
	if filter.Verified != nil && iq.Verified != *filter.Verified {
		return false
	}
	return true
}

func (f *fakeInquiryRepository) filtered(filter repository.InquiryFilter) []model.Inquiry {
	var out []model.Inquiry
	for _, iq := range f.items {
		if f.matches(iq, filter) {
			out = append(out, iq)
		}
	}
	return out
}

func (f *fakeInquiryRepository) Find(_ context.Context, filter repository.InquiryFilter, opts repository.FindOptions) ([]model.Inquiry, error) {
	matched := f.filtered(filter)
	if opts.Skip >= int64(len(matched)) {
		return nil, nil
	}
	matched = matched[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < int64(len(matched)) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (f *fakeInquiryRepository) FindByID(_ context.Context, id string) (model.Inquiry, error) {
	for _, iq := range f.items {
		if iq.ID == id {
			return iq, nil
		}
	}
	return model.Inquiry{}, fmt.Errorf("table:inquiries: %w", pgx.ErrNoRows)
}

func (f *fakeInquiryRepository) Count(_ context.Context, filter repository.InquiryFilter) (int64, error) {
	return int64(len(f.filtered(filter))), nil
}

func (f *fakeInquiryRepository) Create(_ context.Context, params repository.CreateInquiryParams) (model.Inquiry, error) {
	now := time.Now()
	iq := model.Inquiry{
		ID:               uuid.NewString(),
		PropertyID:       params.PropertyID,
		Name:             params.Name,
		Email:            params.Email,
		Phone:            params.Phone,
		Message:          params.Message,
		PreferredContact: params.PreferredContact,
		Status:           params.Status,
		Verified:         params.Verified,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	f.items = append(f.items, iq)
	return iq, nil
}

func (f *fakeInquiryRepository) Update(ctx context.Context, id string, patch repository.InquiryPatch) (model.Inquiry, error) {
	for i, iq := range f.items {
		if iq.ID != id {
			continue
		}
		if patch.Status != nil {
			iq.Status = *patch.Status
		}
		if patch.Verified != nil {
			iq.Verified = *patch.Verified
		}
		f.items[i] = iq
		return iq, nil
	}
	return model.Inquiry{}, fmt.Errorf("table:inquiries: %w", pgx.ErrNoRows)
}

func (f *fakeInquiryRepository) Delete(_ context.Context, id string) (bool, error) {
	for i, iq := range f.items {
		if iq.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeUserRepository is an in-memory UserRepository.
type fakeUserRepository struct {
	items []model.User
}

func (f *fakeUserRepository) matches(u model.User, filter repository.UserFilter) bool {
	if filter.ClerkID != "" && u.ClerkID != filter.ClerkID {
		return false
	}
	if filter.Email != "" && u.Email != filter.Email {
		return false
	}
	return true
}

func (f *fakeUserRepository) Find(_ context.Context, filter repository.UserFilter, opts repository.FindOptions) ([]model.User, error) {
	var out []model.User
	for _, u := range f.items {
		if f.matches(u, filter) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (model.User, error) {
	for _, u := range f.items {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("table:users: %w", pgx.ErrNoRows)
}

func (f *fakeUserRepository) FindOne(_ context.Context, filter repository.UserFilter) (model.User, error) {
	for _, u := range f.items {
		if f.matches(u, filter) {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("table:users: %w", pgx.ErrNoRows)
}

func (f *fakeUserRepository) Count(_ context.Context, filter repository.UserFilter) (int64, error) {
	var n int64
	for _, u := range f.items {
		if f.matches(u, filter) {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepository) Create(_ context.Context, params repository.CreateUserParams) (model.User, error) {
	now := time.Now()
	u := model.User{
		ID:        uuid.NewString(),
		ClerkID:   params.ClerkID,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Role:      params.Role,
		Verified:  params.Verified,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.items = append(f.items, u)
	return u, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, id string, patch repository.UserPatch) (model.User, error) {
	for i, u := range f.items {
		if u.ID != id {
			continue
		}
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Phone != nil {
			u.Phone = *patch.Phone
		}
		if patch.SavedProperties != nil {
			u.SavedProperties = *patch.SavedProperties
		}
		f.items[i] = u
		return u, nil
	}
	return model.User{}, fmt.Errorf("table:users: %w", pgx.ErrNoRows)
}

func (f *fakeUserRepository) Delete(_ context.Context, id string) (bool, error) {
	for i, u := range f.items {
		if u.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeAdminRepository is an in-memory AdminRepository.
type fakeAdminRepository struct {
	items []model.Admin
}

func (f *fakeAdminRepository) Find(_ context.Context, filter repository.AdminFilter, opts repository.FindOptions) ([]model.Admin, error) {
	out := make([]model.Admin, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeAdminRepository) FindByID(_ context.Context, id string) (model.Admin, error) {
	for _, a := range f.items {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Admin{}, fmt.Errorf("table:admins: %w", pgx.ErrNoRows)
}

func (f *fakeAdminRepository) FindByEmail(_ context.Context, email string) (model.Admin, error) {
	for _, a := range f.items {
		if a.Email == email {
			return a, nil
		}
	}
	return model.Admin{}, fmt.Errorf("table:admins: %w", pgx.ErrNoRows)
}

func (f *fakeAdminRepository) Count(_ context.Context, filter repository.AdminFilter) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeAdminRepository) Create(_ context.Context, params repository.CreateAdminParams) (model.Admin, error) {
	now := time.Now()
	a := model.Admin{
		ID:           uuid.NewString(),
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		SuperAdmin:   params.SuperAdmin,
		CreatedBy:    params.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.items = append(f.items, a)
	return a, nil
}

func (f *fakeAdminRepository) Update(ctx context.Context, id string, patch repository.AdminPatch) (model.Admin, error) {
	for i, a := range f.items {
		if a.ID != id {
			continue
		}
		if patch.Email != nil {
			a.Email = *patch.Email
		}
		if patch.PasswordHash != nil {
			a.PasswordHash = *patch.PasswordHash
		}
		if patch.SuperAdmin != nil {
			a.SuperAdmin = *patch.SuperAdmin
		}
		f.items[i] = a
		return a, nil
	}
	return model.Admin{}, fmt.Errorf("table:admins: %w", pgx.ErrNoRows)
}

func (f *fakeAdminRepository) Delete(_ context.Context, id string) (bool, error) {
	for i, a := range f.items {
		if a.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeEnqueuer records enqueued tasks; when failWith is set every call
// errors instead.
type fakeEnqueuer struct {
	tasks    []*asynq.Task
	failWith error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: uuid.NewString(), Type: task.Type()}, nil
}

// fakeGeocoder returns a fixed result or an error.
type fakeGeocoder struct {
	enabled  bool
	result   geocode.Result
	failWith error
	calls    int
}

func (f *fakeGeocoder) Enabled() bool {
	return f.enabled
}

func (f *fakeGeocoder) Geocode(_ context.Context, address, city string) (geocode.Result, error) {
	f.calls++
	if f.failWith != nil {
		return geocode.Result{}, f.failWith
	}
	return f.result, nil
}
