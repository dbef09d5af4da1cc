package search

import (
	"math"

	"gf-server/models"
)

// LongitudeTolerance is the half-width, in degrees, of the longitude window.
const LongitudeTolerance = 3.0

// GeoFilter keeps listings whose longitude lies within LongitudeTolerance of
// the origin. Listings with a missing or zero longitude are kept. No latitude
// bound is applied.
func GeoFilter(listings []models.RawListing, origin models.LatLng) []models.RawListing {
	out := make([]models.RawListing, 0, len(listings))
	for _, l := range listings {
		_, lng := l.Coordinates()
		if lng == 0 || math.IsNaN(lng) || math.Abs(lng-origin.Lng) <= LongitudeTolerance {
			out = append(out, l)
		}
	}
	return out
}
