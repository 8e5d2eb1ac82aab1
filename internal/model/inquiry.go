package model

import "time"

// InquiryStatus tracks how far along an inquiry is in the back office.
type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "pending"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusResolved  InquiryStatus = "resolved"
)

// IsValidInquiryStatus reports whether s is one of the allowed statuses.
func IsValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryStatusPending, InquiryStatusContacted, InquiryStatusResolved:
		return true
	default:
		return false
	}
}

// ContactChannel is the submitter's preferred way of being reached.
type ContactChannel string

const (
	ContactChannelWhatsApp ContactChannel = "whatsapp"
	ContactChannelPhone    ContactChannel = "phone"
	ContactChannelEmail    ContactChannel = "email"
)

// IsValidContactChannel reports whether c is one of the allowed channels.
func IsValidContactChannel(c ContactChannel) bool {
	switch c {
	case ContactChannelWhatsApp, ContactChannelPhone, ContactChannelEmail:
		return true
	default:
		return false
	}
}

// Inquiry is a contact request submitted against a specific property.
//
// PropertyID must reference an existing property at creation time. Deleting
// a property does not remove its inquiries; the reference simply goes stale.
type Inquiry struct {
	ID               string         `json:"id"`
	PropertyID       string         `json:"propertyId"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	Message          string         `json:"message"`
	PreferredContact ContactChannel `json:"preferredContact"`
	Status           InquiryStatus  `json:"status"`
	Verified         bool           `json:"verified"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}
