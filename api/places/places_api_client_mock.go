package places

import (
	"context"
	"fmt"

	"gf-server/models"
	"gf-server/util"
)

// PlacesApiClientMock serves listings from a JSON fixture on disk. The fixture
// is either an upstream response ({"places": [...]}) or a list of raw listings.
type PlacesApiClientMock struct {
	fixturePath string
}

// NewPlacesApiClientMock creates a new instance of PlacesApiClientMock
func NewPlacesApiClientMock(fixturePath string) *PlacesApiClientMock {
	return &PlacesApiClientMock{fixturePath: fixturePath}
}

// Search returns the fixture listings regardless of the request.
func (c *PlacesApiClientMock) Search(ctx context.Context, req SearchRequest) ([]models.RawListing, error) {
	if resp, err := util.ReadPlacesSearchResponseFromJSON(c.fixturePath); err == nil && len(resp.Places) > 0 {
		wirePlaces, _ := decodePlaces(resp.Places)
		listings := make([]models.RawListing, 0, len(wirePlaces))
		for _, p := range wirePlaces {
			listings = append(listings, ToRawListing(p))
		}
		return listings, nil
	}

	listings, err := util.ReadRawListingsFromJSON(c.fixturePath)
	if err != nil {
		return nil, fmt.Errorf("could not read places fixture: %w", err)
	}
	return listings, nil
}
