package search

import (
	"math"
	"sort"
	"strings"

	"gf-server/models"
)

// DefaultResultLimit caps the ranked list.
const DefaultResultLimit = 100

const addressUnavailable = "Address not available"

// DistanceTieMiles is the distance difference below which two gyms rank by price.
const DistanceTieMiles = 0.1

// Stats counts listings surviving each stage of a ranking run.
type Stats struct {
	Input   int
	Geo     int
	Text    int
	Priced  int
	Quality int
	Output  int
}

// Pipeline turns raw provider listings into the ranked display list. It holds
// no per-call state and is safe for concurrent use.
type Pipeline struct {
	resolver   *PriceResolver
	quality    *QualityFilter
	normalizer *NameNormalizer
	limit      int
}

func NewPipeline(rules *Rules, limit int) *Pipeline {
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	return &Pipeline{
		resolver:   NewPriceResolver(rules),
		quality:    NewQualityFilter(rules),
		normalizer: NewNameNormalizer(rules),
		limit:      limit,
	}
}

// Rank runs the full chain and returns at most limit gyms sorted by distance,
// then by monthly price.
func (p *Pipeline) Rank(listings []models.RawListing, origin models.LatLng, query string, feed models.LiveFeed) []models.DisplayGym {
	gyms, _ := p.RankWithStats(listings, origin, query, feed)
	return gyms
}

// RankWithStats is Rank plus per-stage counts.
func (p *Pipeline) RankWithStats(listings []models.RawListing, origin models.LatLng, query string, feed models.LiveFeed) ([]models.DisplayGym, Stats) {
	stats := Stats{Input: len(listings)}

	candidates := GeoFilter(listings, origin)
	stats.Geo = len(candidates)

	candidates = MatchText(candidates, query)
	stats.Text = len(candidates)

	candidates = PriceGate(candidates, p.resolver, feed)
	stats.Priced = len(candidates)

	candidates = p.quality.Filter(candidates)
	stats.Quality = len(candidates)

	gyms := make([]models.DisplayGym, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for i := range candidates {
		l := &candidates[i]
		if l.ID != "" {
			if seen[l.ID] {
				continue
			}
			seen[l.ID] = true
		}
		gyms = append(gyms, p.project(l, origin, feed))
	}

	SortByDistance(gyms)

	if len(gyms) > p.limit {
		gyms = gyms[:p.limit]
	}
	stats.Output = len(gyms)
	return gyms, stats
}

func (p *Pipeline) project(l *models.RawListing, origin models.LatLng, feed models.LiveFeed) models.DisplayGym {
	lat, lng := l.Coordinates()
	exact := DistanceMiles(origin.Lat, origin.Lng, lat, lng)
	quote := p.resolver.Resolve(l, feed)

	photos := l.Photos
	if photos == nil {
		photos = []string{}
	}

	return models.DisplayGym{
		ID:            l.ID,
		Name:          p.normalizer.Normalize(l.Name),
		Address:       displayAddress(l),
		Rating:        l.Rating,
		Type:          displayType(l),
		PriceLevel:    PriceLevelSymbol(l.PriceLevel, quote),
		Lat:           lat,
		Lng:           lng,
		Distance:      roundTenth(exact),
		ExactDistance: exact,
		Photos:        photos,
		Website:       l.Website,
		LowestPrice:   l.LowestPrice,
		Memberships:   l.Memberships,
		Price:         quote,
	}
}

// SortByDistance orders gyms by exact distance. Neighbours less than
// DistanceTieMiles apart count as a tie and are ordered by monthly price,
// missing prices last. Equal keys keep their input order.
func SortByDistance(gyms []models.DisplayGym) {
	sort.SliceStable(gyms, func(i, j int) bool {
		return gyms[i].ExactDistance < gyms[j].ExactDistance
	})

	// Each swap removes one price inversion, so this terminates. A gym only
	// moves past neighbours within the tie tolerance.
	for swapped := true; swapped; {
		swapped = false
		for i := 1; i < len(gyms); i++ {
			a, b := gyms[i-1], gyms[i]
			if math.Abs(a.ExactDistance-b.ExactDistance) < DistanceTieMiles && monthlyOrInf(b) < monthlyOrInf(a) {
				gyms[i-1], gyms[i] = b, a
				swapped = true
			}
		}
	}
}

// PriceLevelSymbol renders a provider tier (1..4) as pound signs, deriving the
// tier from the resolved price when the provider has none.
func PriceLevelSymbol(tier int, quote models.PriceQuote) string {
	if tier < 1 || tier > 4 {
		if !quote.HasPrice() {
			return ""
		}
		switch m := *quote.Monthly; {
		case m < 25:
			tier = 1
		case m < 45:
			tier = 2
		case m < 80:
			tier = 3
		default:
			tier = 4
		}
	}
	return strings.Repeat("£", tier)
}

func monthlyOrInf(g models.DisplayGym) float64 {
	if g.Price.Monthly == nil {
		return math.Inf(1)
	}
	return *g.Price.Monthly
}

func displayAddress(l *models.RawListing) string {
	if a := strings.TrimSpace(l.Address); a != "" {
		return a
	}
	if c := strings.TrimSpace(l.City); c != "" {
		return c
	}
	return addressUnavailable
}

func displayType(l *models.RawListing) string {
	if l.Type != "" {
		return l.Type
	}
	if len(l.Types) > 0 {
		return l.Types[0]
	}
	return "gym"
}
