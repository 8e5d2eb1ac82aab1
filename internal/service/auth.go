package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nyumbahomes/nyumba/internal/errs"
	"github.com/nyumbahomes/nyumba/internal/identity"
	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/repository"
)

// AuthService authenticates back-office admins with local credentials and
// mints their session tokens.
type AuthService struct {
	admins repository.AdminRepository
	issuer *identity.TokenIssuer
	logger *zerolog.Logger
}

// LoginResult bundles the session token and the authenticated admin.
type LoginResult struct {
	Token string      `json:"token"`
	Admin model.Admin `json:"admin"`
}

// NewAuthService creates an AuthService.
func NewAuthService(admins repository.AdminRepository, issuer *identity.TokenIssuer, logger *zerolog.Logger) *AuthService {
	return &AuthService{
		admins: admins,
		issuer: issuer,
		logger: logger,
	}
}

// Login verifies the credentials and returns a signed session token. A
// missing account and a wrong password produce the same error so the
// endpoint does not leak which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LoginResult{}, errs.NewUnauthorizedError("Invalid email or password", true)
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, errs.NewUnauthorizedError("Invalid email or password", true)
	}

	token, err := s.issuer.Issue(admin.ID, admin.Email, admin.SuperAdmin)
	if err != nil {
		return LoginResult{}, err
	}

	s.logger.Info().Str("admin_id", admin.ID).Msg("admin logged in")

	return LoginResult{Token: token, Admin: admin}, nil
}

// Me returns the admin behind an authenticated identity.
func (s *AuthService) Me(ctx context.Context, id identity.Identity) (model.Admin, error) {
	return s.admins.FindByID(ctx, id.Subject)
}

// HashPassword hashes a plaintext admin password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
