package search

import (
	"fmt"

	"gf-server/models"
)

// QualityFilter drops placeholder and non-gym records.
type QualityFilter struct {
	rules *Rules
}

func NewQualityFilter(rules *Rules) *QualityFilter {
	return &QualityFilter{rules: rules}
}

// Accept reports whether the listing should be kept, with a reason.
func (f *QualityFilter) Accept(l *models.RawListing) (bool, string) {
	if rule, ok := f.rules.First(ActionBlock, l.Name); ok {
		return false, fmt.Sprintf("name matches blocked term %q", rule.Pattern)
	}
	for _, t := range listingTypes(l) {
		if rule, ok := f.rules.First(ActionBlock, t); ok {
			return false, fmt.Sprintf("type %q matches blocked term %q", t, rule.Pattern)
		}
	}

	if brand, ok := f.rules.First(ActionMajorBrand, l.Name); ok &&
		l.UserRatingsTotal == 0 &&
		f.rules.IsPlaceholderAddress(l.Address, l.City) {
		// Exempt names are never treated as placeholders.
		if f.rules.Matches(ActionExempt, l.Name) {
			return true, "exempt brand"
		}
		return false, fmt.Sprintf("unrated %q entry with placeholder address", brand.Pattern)
	}

	return true, "ok"
}

// Filter returns the accepted listings in input order.
func (f *QualityFilter) Filter(listings []models.RawListing) []models.RawListing {
	out := make([]models.RawListing, 0, len(listings))
	for i := range listings {
		if ok, _ := f.Accept(&listings[i]); ok {
			out = append(out, listings[i])
		}
	}
	return out
}

// PriceGate keeps listings that resolve to a positive price, plus brands the
// price table can always cover.
func PriceGate(listings []models.RawListing, resolver *PriceResolver, feed models.LiveFeed) []models.RawListing {
	out := make([]models.RawListing, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		if resolver.HasBrandFallback(l.Name) || resolver.Resolve(l, feed).HasPrice() {
			out = append(out, *l)
		}
	}
	return out
}

func listingTypes(l *models.RawListing) []string {
	types := make([]string, 0, len(l.Types)+1)
	if l.Type != "" {
		types = append(types, l.Type)
	}
	return append(types, l.Types...)
}
