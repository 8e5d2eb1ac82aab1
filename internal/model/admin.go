package model

import "time"

// Admin is a back-office account authenticated with local credentials.
//
// CreatedBy references the admin that created this account. The bootstrap
// admin has a nil CreatedBy and is protected from deletion.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	SuperAdmin   bool      `json:"superAdmin"`
	CreatedBy    *string   `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsBootstrap reports whether the admin is the bootstrap super admin.
func (a Admin) IsBootstrap() bool {
	return a.SuperAdmin && a.CreatedBy == nil
}
