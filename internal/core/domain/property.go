package domain

import (
	"errors"
	"time"
)

// PropertyType enumerates the kinds of listed objects.
type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeLand       PropertyType = "land"
	TypeCommercial PropertyType = "commercial"
)

var ErrPropertyNotFound = errors.New("property not found")

// ValidPropertyType reports whether t is a known property type.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case TypeApartment, TypeHouse, TypeLand, TypeCommercial:
		return true
	}
	return false
}

// Photo is the stored metadata of an uploaded image. The bytes themselves
// live in external file storage; only the path is tracked here.
type Photo struct {
	ID         int64     `json:"id" bson:"id"`
	PropertyID int64     `json:"property_id" bson:"property_id"`
	FilePath   string    `json:"file_path" bson:"file_path"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Property is the core listing aggregate.
type Property struct {
	ID           int64        `json:"id" bson:"_id"`
	Title        string       `json:"title" bson:"title"`
	Description  string       `json:"description,omitempty" bson:"description,omitempty"`
	City         string       `json:"city" bson:"city"`
	Address      string       `json:"address" bson:"address"`
	PriceEUR     float64      `json:"price_eur" bson:"price_eur"`
	PropertyType PropertyType `json:"property_type" bson:"property_type"`
	Rooms        int          `json:"rooms,omitempty" bson:"rooms,omitempty"`
	AreaM2       float64      `json:"area_m2,omitempty" bson:"area_m2,omitempty"`
	IsForSale    bool         `json:"is_for_sale" bson:"is_for_sale"`
	IsForRent    bool         `json:"is_for_rent" bson:"is_for_rent"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	Photos       []Photo      `json:"photos" bson:"photos"`
}

// PropertyFilter narrows property listings. Zero values mean "no constraint".
type PropertyFilter struct {
	City         string
	PropertyType PropertyType
	MinPrice     float64
	MaxPrice     float64
}
