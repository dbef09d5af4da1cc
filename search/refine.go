package search

import (
	"math"
	"sort"
	"strings"

	"gf-server/models"
)

type SortKey string

const (
	SortDistance  SortKey = "distance"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortRating    SortKey = "rating"
)

// RefineOptions drives the second, in-place pass over an already ranked list.
type RefineOptions struct {
	Query       string
	Type        string
	MaxDistance float64
	PriceLevel  string
	MinRating   float64
	Sort        SortKey
}

// ParseSortKey maps a query value to a SortKey, defaulting to distance.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceAsc, SortPriceDesc, SortRating:
		return k
	default:
		return SortDistance
	}
}

// Refine filters and re-sorts ranked gyms without touching the input slice.
// Applying it twice with the same options gives the same result.
func Refine(gyms []models.DisplayGym, opts RefineOptions) []models.DisplayGym {
	q := strings.ToLower(strings.TrimSpace(opts.Query))
	typ := strings.ToLower(strings.TrimSpace(opts.Type))

	out := make([]models.DisplayGym, 0, len(gyms))
	for _, g := range gyms {
		if !g.Price.HasPrice() {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(g.Name), q) && !strings.Contains(strings.ToLower(g.Address), q) {
			continue
		}
		if typ != "" && typ != "all" && strings.ToLower(g.Type) != typ {
			continue
		}
		if opts.MaxDistance > 0 && g.Distance > opts.MaxDistance {
			continue
		}
		if opts.PriceLevel != "" && g.PriceLevel != opts.PriceLevel {
			continue
		}
		if opts.MinRating > 0 && g.Rating < opts.MinRating {
			continue
		}
		out = append(out, g)
	}

	switch opts.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return monthlyOrInf(out[i]) < monthlyOrInf(out[j]) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return monthlyOrNegInf(out[i]) > monthlyOrNegInf(out[j]) })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	default:
		SortByDistance(out)
	}
	return out
}

func monthlyOrNegInf(g models.DisplayGym) float64 {
	if g.Price.Monthly == nil {
		return math.Inf(-1)
	}
	return *g.Price.Monthly
}
