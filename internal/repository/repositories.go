package repository

import (
	"github.com/nyumbahomes/nyumba/internal/server"
)

// Repositories is a container for all repository instances. The fields are
// interfaces so services can be tested against in-memory fakes.
type Repositories struct {
	Properties PropertyRepository
	Inquiries  InquiryRepository
	Users      UserRepository
	Admins     AdminRepository
}

// NewRepositories constructs the repository container over the shared
// database pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Properties: NewPropertyRepository(s.DB.Pool),
		Inquiries:  NewInquiryRepository(s.DB.Pool),
		Users:      NewUserRepository(s.DB.Pool),
		Admins:     NewAdminRepository(s.DB.Pool),
	}
}
