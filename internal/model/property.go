package model

import "time"

// PropertyType enumerates the listing categories a property can belong to.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeVilla     PropertyType = "villa"
	PropertyTypeStudio    PropertyType = "studio"
	PropertyTypePenthouse PropertyType = "penthouse"
)

// IsValidPropertyType reports whether t is one of the allowed categories.
func IsValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeVilla, PropertyTypeStudio, PropertyTypePenthouse:
		return true
	default:
		return false
	}
}

// Property is a rental listing.
//
// Price is stored in whole currency units (KES). Images is an ordered list
// of public media URLs; the first entry is the cover image.
type Property struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Price        int64        `json:"price"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	County       string       `json:"county"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	PlaceRef     string       `json:"placeRef,omitempty"`
	PropertyType PropertyType `json:"propertyType"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	AreaSqM      float64      `json:"areaSqM"`
	Amenities    []string     `json:"amenities"`
	Images       []string     `json:"images"`
	Featured     bool         `json:"featured"`
	Available    bool         `json:"available"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
