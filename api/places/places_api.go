package places

import (
	"context"
	"errors"
	"strings"

	"gf-server/models"
)

// DefaultQuery is the query the web client sends when the user typed nothing.
const DefaultQuery = "gym"

const (
	ModeNearby = "nearby"
	ModeText   = "text"
)

// ErrMissingCoordinates is returned when a search has no usable origin.
var ErrMissingCoordinates = errors.New("missing search coordinates")

// SearchRequest describes one upstream lookup.
type SearchRequest struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
	Query        string
}

// Mode picks free-text search only for a non-default query.
func (r SearchRequest) Mode() string {
	q := strings.TrimSpace(r.Query)
	if q == "" || strings.EqualFold(q, DefaultQuery) {
		return ModeNearby
	}
	return ModeText
}

// PlacesAPI defines the interface for the upstream places provider
type PlacesAPI interface {
	Search(ctx context.Context, req SearchRequest) ([]models.RawListing, error)
}
