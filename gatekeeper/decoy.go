package gatekeeper

import (
	"fmt"

	"gf-server/models"
)

// Decoy defaults.
const (
	DefaultDecoyCount = 10
	DecoyMonthlyPrice = 999.99
	DecoyAddress      = "Address unavailable"
	DecoyWarning      = "Results are temporarily limited for this network."
)

// DecoyResponse builds the synthetic payload served to blocked callers. The
// shape depends only on count, so every call returns identical records.
func DecoyResponse(count int) models.DecoyResponse {
	if count <= 0 {
		count = DefaultDecoyCount
	}
	results := make([]models.DisplayGym, count)
	for i := range results {
		monthly := DecoyMonthlyPrice
		results[i] = models.DisplayGym{
			ID:         fmt.Sprintf("decoy-%d", i+1),
			Name:       fmt.Sprintf("Gym %d", i+1),
			Address:    DecoyAddress,
			Type:       "gym",
			PriceLevel: "££££",
			Photos:     []string{},
			Price:      models.PriceQuote{Monthly: &monthly, IsEstimate: true},
		}
	}
	return models.DecoyResponse{Results: results, Warning: DecoyWarning}
}
