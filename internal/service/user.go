package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/errs"
	"github.com/nyumbahomes/nyumba/internal/identity"
	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/repository"
	"github.com/nyumbahomes/nyumba/internal/validation"
)

// UserService manages end-user profiles and their saved listings. Identity
// lives with the hosted provider; the local row carries the profile and
// preference data the provider does not.
type UserService struct {
	users      repository.UserRepository
	properties repository.PropertyRepository
	logger     *zerolog.Logger
}

// UpdateProfileInput is a sparse update to a user's local profile.
type UpdateProfileInput struct {
	Name  *string
	Phone *string
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, properties repository.PropertyRepository, logger *zerolog.Logger) *UserService {
	return &UserService{
		users:      users,
		properties: properties,
		logger:     logger,
	}
}

// EnsureFromIdentity returns the local row for a hosted identity, creating
// it on first sight. The provider has already verified the email by the
// time a session exists.
func (s *UserService) EnsureFromIdentity(ctx context.Context, id identity.Identity) (model.User, error) {
	user, err := s.users.FindOne(ctx, repository.UserFilter{ClerkID: id.Subject})
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, err
	}

	user, err = s.users.Create(ctx, repository.CreateUserParams{
		ClerkID:  id.Subject,
		Email:    id.Email,
		Role:     model.UserRoleUser,
		Verified: true,
	})
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user provisioned from hosted identity")
	return user, nil
}

// UpdateProfile applies a sparse update to the caller's profile.
func (s *UserService) UpdateProfile(ctx context.Context, id identity.Identity, input UpdateProfileInput) (model.User, error) {
	user, err := s.EnsureFromIdentity(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	return s.users.Update(ctx, user.ID, repository.UserPatch{
		Name:  input.Name,
		Phone: input.Phone,
	})
}

// SaveProperty adds a listing to the caller's saved list. Saving a listing
// twice leaves a single entry.
func (s *UserService) SaveProperty(ctx context.Context, id identity.Identity, propertyID string) (model.User, error) {
	if !validation.IsValidUUID(propertyID) {
		return model.User{}, errs.NewNotFoundError("Property not found", true, nil)
	}
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return model.User{}, err
	}

	user, err := s.EnsureFromIdentity(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	for _, saved := range user.SavedProperties {
		if saved == propertyID {
			return user, nil
		}
	}

	saved := append(user.SavedProperties, propertyID)
	return s.users.Update(ctx, user.ID, repository.UserPatch{SavedProperties: &saved})
}

// UnsaveProperty removes a listing from the caller's saved list. Removing
// a listing that is not saved is not an error.
func (s *UserService) UnsaveProperty(ctx context.Context, id identity.Identity, propertyID string) (model.User, error) {
	user, err := s.EnsureFromIdentity(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	saved := make([]string, 0, len(user.SavedProperties))
	for _, sp := range user.SavedProperties {
		if sp != propertyID {
			saved = append(saved, sp)
		}
	}
	if len(saved) == len(user.SavedProperties) {
		return user, nil
	}

	return s.users.Update(ctx, user.ID, repository.UserPatch{SavedProperties: &saved})
}

// SavedProperties returns the caller's saved listings as full records.
// Listings deleted since they were saved are simply absent from the
// result.
func (s *UserService) SavedProperties(ctx context.Context, id identity.Identity) ([]model.Property, error) {
	user, err := s.EnsureFromIdentity(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(user.SavedProperties) == 0 {
		return []model.Property{}, nil
	}

	properties, err := s.properties.Find(ctx, repository.PropertyFilter{IDs: user.SavedProperties}, repository.FindOptions{})
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []model.Property{}
	}
	return properties, nil
}
