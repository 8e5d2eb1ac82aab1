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

// AdminService manages back-office accounts.
type AdminService struct {
	admins repository.AdminRepository
	logger *zerolog.Logger
}

// CreateAdminInput is a request to provision a back-office account.
type CreateAdminInput struct {
	Email      string
	Password   string
	SuperAdmin bool
}

// UpdateAdminInput is a sparse update to a back-office account.
type UpdateAdminInput struct {
	Email      *string
	Password   *string
	SuperAdmin *bool
}

// NewAdminService creates an AdminService.
func NewAdminService(admins repository.AdminRepository, logger *zerolog.Logger) *AdminService {
	return &AdminService{
		admins: admins,
		logger: logger,
	}
}

// Create provisions an admin account on behalf of the calling super admin.
// The creator is recorded so the provisioning chain stays auditable.
func (s *AdminService) Create(ctx context.Context, caller identity.Identity, input CreateAdminInput) (model.Admin, error) {
	hash, err := HashPassword(input.Password)
	if err != nil {
		return model.Admin{}, err
	}

	createdBy := caller.Subject
	admin, err := s.admins.Create(ctx, repository.CreateAdminParams{
		Email:        input.Email,
		PasswordHash: hash,
		SuperAdmin:   input.SuperAdmin,
		CreatedBy:    &createdBy,
	})
	if err != nil {
		return model.Admin{}, err
	}

	s.logger.Info().
		Str("admin_id", admin.ID).
		Str("created_by", caller.Subject).
		Bool("super_admin", admin.SuperAdmin).
		Msg("admin account created")

	return admin, nil
}

// AdminList is one page of admin accounts.
type AdminList struct {
	Data  []model.Admin `json:"data"`
	Total int64         `json:"total"`
	Page  int64         `json:"page"`
	Limit int64         `json:"limit"`
}

// List returns one page of admin accounts.
func (s *AdminService) List(ctx context.Context, opts ListOptions) (AdminList, error) {
	find, page, limit := opts.findOptions()

	admins, err := s.admins.Find(ctx, repository.AdminFilter{}, find)
	if err != nil {
		return AdminList{}, err
	}
	if admins == nil {
		admins = []model.Admin{}
	}

	total, err := s.admins.Count(ctx, repository.AdminFilter{})
	if err != nil {
		return AdminList{}, err
	}

	return AdminList{
		Data:  admins,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// Get returns one admin account by id.
func (s *AdminService) Get(ctx context.Context, id string) (model.Admin, error) {
	if !validation.IsValidUUID(id) {
		return model.Admin{}, errs.NewNotFoundError("Admin not found", true, nil)
	}
	return s.admins.FindByID(ctx, id)
}

// Update applies a sparse update to an admin account. A new password is
// rehashed before storage. Only a super admin may change the super-admin
// claim, otherwise any admin could promote an account past the gates on
// provisioning and removal.
func (s *AdminService) Update(ctx context.Context, caller identity.Identity, id string, input UpdateAdminInput) (model.Admin, error) {
	if !validation.IsValidUUID(id) {
		return model.Admin{}, errs.NewNotFoundError("Admin not found", true, nil)
	}
	if input.SuperAdmin != nil && !caller.SuperAdmin {
		return model.Admin{}, errs.NewForbiddenError("Only a super admin can change the super admin claim", true)
	}

	patch := repository.AdminPatch{
		Email:      input.Email,
		SuperAdmin: input.SuperAdmin,
	}
	if input.Password != nil {
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return model.Admin{}, err
		}
		patch.PasswordHash = &hash
	}

	return s.admins.Update(ctx, id, patch)
}

// Delete removes an admin account. The bootstrap super admin cannot be
// deleted, otherwise the back office could lock itself out entirely.
func (s *AdminService) Delete(ctx context.Context, id string) error {
	if !validation.IsValidUUID(id) {
		return nil
	}

	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		// Missing rows are fine: delete is idempotent.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if admin.IsBootstrap() {
		return errs.NewForbiddenError("The bootstrap admin cannot be deleted", true)
	}

	if _, err := s.admins.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("admin_id", id).Msg("admin account deleted")
	return nil
}
