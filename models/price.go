package models

// PriceQuote is a resolved monthly price. A nil Monthly means no price is
// available for the gym.
type PriceQuote struct {
	Monthly    *float64 `json:"monthly,omitempty"`
	JoiningFee float64  `json:"joiningFee"`
	IsEstimate bool     `json:"isEstimate"`
}

// HasPrice reports whether the quote carries a usable positive monthly price.
func (q PriceQuote) HasPrice() bool {
	return q.Monthly != nil && *q.Monthly > 0
}

// LivePrice is one named option in a live feed entry.
type LivePrice struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// LiveFeedEntry is the live pricing record for one listing id.
type LiveFeedEntry struct {
	Prices       []LivePrice `json:"prices,omitempty"`
	MonthlyPrice *float64    `json:"monthlyPrice,omitempty"`
	JoiningFees  float64     `json:"joiningfees,omitempty"`
}

// LiveFeed maps listing ids to their live entries. A missing key means no live data.
type LiveFeed map[string]LiveFeedEntry

// Lookup returns the entry for id, if any. Safe on a nil feed.
func (f LiveFeed) Lookup(id string) (LiveFeedEntry, bool) {
	if f == nil {
		return LiveFeedEntry{}, false
	}
	e, ok := f[id]
	return e, ok
}

// PricedGymsResponse lists the gyms that have live prices.
type PricedGymsResponse struct {
	IDs []string `json:"ids"`
}
