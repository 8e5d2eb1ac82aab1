package service

import (
	"time"

	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/nyumbahomes/nyumba/internal/identity"
	"github.com/nyumbahomes/nyumba/internal/lib/geocode"
	"github.com/nyumbahomes/nyumba/internal/lib/job"
	"github.com/nyumbahomes/nyumba/internal/lib/media"
	"github.com/nyumbahomes/nyumba/internal/repository"
	"github.com/nyumbahomes/nyumba/internal/server"
)

// Services is a container that groups all business-logic services.
type Services struct {
	Auth     *AuthService
	Property *PropertyService
	Inquiry  *InquiryService
	Admin    *AdminService
	User     *UserService
	Upload   *UploadService

	Job *job.JobService
}

// NewServices constructs the service container and wires shared
// dependencies. It also registers the Clerk secret key so hosted-identity
// verification works everywhere in the process.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	if s.Config.Auth.ClerkSecretKey != "" {
		clerk.SetKey(s.Config.Auth.ClerkSecretKey)
	}

	issuer := identity.NewTokenIssuer(
		s.Config.Auth.SecretKey,
		time.Duration(s.Config.Auth.TokenTTLHours)*time.Hour,
	)

	geocoder := geocode.NewClient(s.Config, s.Logger)
	mediaClient := media.NewClient(s.Config, s.Logger)

	propertyService := NewPropertyService(repos.Properties, geocoder, s.Logger)

	return &Services{
		Auth:     NewAuthService(repos.Admins, issuer, s.Logger),
		Property: propertyService,
		Inquiry:  NewInquiryService(repos.Inquiries, repos.Properties, s.Job.Client, s.Logger),
		Admin:    NewAdminService(repos.Admins, s.Logger),
		User:     NewUserService(repos.Users, repos.Properties, s.Logger),
		Upload:   NewUploadService(mediaClient, s.Logger),
		Job:      s.Job,
	}
}
