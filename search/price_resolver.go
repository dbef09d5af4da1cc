package search

import "gf-server/models"

// PriceResolver picks a displayable monthly price for a listing. Sources are
// tried in order: live feed price list, live feed flat price, brand table,
// embedded memberships.
type PriceResolver struct {
	rules *Rules
}

func NewPriceResolver(rules *Rules) *PriceResolver {
	return &PriceResolver{rules: rules}
}

// Resolve never fails; a quote with a nil Monthly means no price.
func (r *PriceResolver) Resolve(l *models.RawListing, feed models.LiveFeed) models.PriceQuote {
	if entry, ok := feed.Lookup(l.ID); ok {
		if len(entry.Prices) > 0 {
			lowest := entry.Prices[0].Price
			for _, p := range entry.Prices[1:] {
				if p.Price < lowest {
					lowest = p.Price
				}
			}
			return models.PriceQuote{Monthly: floatPtr(lowest), JoiningFee: entry.JoiningFees, IsEstimate: false}
		}
		if entry.MonthlyPrice != nil {
			return models.PriceQuote{Monthly: floatPtr(*entry.MonthlyPrice), JoiningFee: entry.JoiningFees, IsEstimate: false}
		}
	}

	if rule, ok := r.rules.First(ActionPrice, l.Name); ok {
		return models.PriceQuote{
			Monthly:    floatPtr(rule.Payload.Monthly),
			JoiningFee: rule.Payload.JoiningFee,
			IsEstimate: true,
		}
	}

	if lowest, ok := lowestMembershipPrice(l.Memberships); ok {
		return models.PriceQuote{Monthly: floatPtr(lowest), IsEstimate: true}
	}

	return models.PriceQuote{Monthly: nil, JoiningFee: 0, IsEstimate: true}
}

// HasBrandFallback reports whether the brand table can price this name.
func (r *PriceResolver) HasBrandFallback(name string) bool {
	return r.rules.Matches(ActionPrice, name)
}

func lowestMembershipPrice(ms []models.Membership) (float64, bool) {
	found := false
	var lowest float64
	for _, m := range ms {
		if m.Price <= 0 {
			continue
		}
		if !found || m.Price < lowest {
			lowest = m.Price
			found = true
		}
	}
	return lowest, found
}

func floatPtr(f float64) *float64 {
	return &f
}
