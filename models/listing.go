package models

import "fmt"

// LatLng is a coordinate pair in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Membership is one embedded membership option carried by a listing.
type Membership struct {
	Price float64 `json:"price"`
	Name  string  `json:"name"`
	URL   string  `json:"url,omitempty"`
}

// RawListing is a gym record as returned by the places provider. It is treated
// as an immutable snapshot for the lifetime of a single search.
type RawListing struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Address          string       `json:"address,omitempty"`
	City             string       `json:"city,omitempty"`
	Location         *LatLng      `json:"location,omitempty"`
	Lat              float64      `json:"lat,omitempty"`
	Lng              float64      `json:"lng,omitempty"`
	Rating           float64      `json:"rating,omitempty"`
	UserRatingsTotal int          `json:"user_ratings_total,omitempty"`
	PriceLevel       int          `json:"price_level,omitempty"`
	LowestPrice      *float64     `json:"lowest_price,omitempty"`
	Memberships      []Membership `json:"memberships,omitempty"`
	Type             string       `json:"type,omitempty"`
	Types            []string     `json:"types,omitempty"`
	Photos           []string     `json:"photos,omitempty"`
	Website          string       `json:"website,omitempty"`
	GoogleMapsURI    string       `json:"googleMapsUri,omitempty"`
}

// Coordinates returns the nested location when present, else the flat lat/lng.
func (l *RawListing) Coordinates() (lat, lng float64) {
	if l.Location != nil {
		return l.Location.Lat, l.Location.Lng
	}
	return l.Lat, l.Lng
}

func (l *RawListing) ToString() string {
	lat, lng := l.Coordinates()
	return fmt.Sprintf("RawListing(id=%s, name=%s, city=%s, lat=%f, lng=%f)",
		l.ID, l.Name, l.City, lat, lng)
}
