package search

import (
	"strings"

	"gf-server/models"
)

// MatchText keeps listings whose city equals the query or whose name contains
// it, both case-insensitively. An empty query keeps everything.
func MatchText(listings []models.RawListing, query string) []models.RawListing {
	q := strings.TrimSpace(query)
	if q == "" {
		return listings
	}
	lower := strings.ToLower(q)

	out := make([]models.RawListing, 0, len(listings))
	for _, l := range listings {
		if matchesText(&l, q, lower) {
			out = append(out, l)
		}
	}
	return out
}

func matchesText(l *models.RawListing, query, lowerQuery string) bool {
	if strings.EqualFold(strings.TrimSpace(l.City), query) {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), lowerQuery)
}
