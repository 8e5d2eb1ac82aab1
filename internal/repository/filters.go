package repository

import (
	"github.com/nyumbahomes/nyumba/internal/model"
	"github.com/nyumbahomes/nyumba/internal/querybuilder"
)

// FindOptions shapes a result set: single-field sort plus independent
// optional skip and limit. Zero values mean default sort (creation time
// descending), no offset and no cap.
type FindOptions struct {
	SortBy    string
	SortOrder string
	Skip      int64
	Limit     int64
}

func (o FindOptions) sort() querybuilder.Sort {
	return querybuilder.Sort{Field: o.SortBy, Direction: o.SortOrder}
}

// PropertyFilter selects properties. Only set fields constrain the result.
type PropertyFilter struct {
	// IDs restricts to an explicit id set, used for saved-property lists.
	IDs []string
	// Location matches case-insensitively against city or address.
	Location string
	// City and County are exact matches.
	City   string
	County string
	// Search matches case-insensitively against title or description.
	Search       string
	PropertyType model.PropertyType
	MinPrice     *int64
	MaxPrice     *int64
	Bedrooms     *int
	Bathrooms    *int
	// Amenities matches listings carrying any of the given tags.
	Amenities []string
	Available *bool
	Featured  *bool
}

// InquiryFilter selects inquiries.
type InquiryFilter struct {
	PropertyID string
	Status     model.InquiryStatus
	// Statuses is a set-membership alternative to Status.
	Statuses []string
	Email    string
	Verified *bool
}

// UserFilter selects users.
type UserFilter struct {
	ClerkID  string
	Email    string
	Role     model.UserRole
	Verified *bool
}

// AdminFilter selects admins.
type AdminFilter struct {
	Email      string
	SuperAdmin *bool
	CreatedBy  string
}
