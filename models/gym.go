package models

// DisplayGym is the projection returned to clients. It is built fresh for
// every search and never mutated afterwards. Distance is rounded for display;
// ExactDistance is the unrounded value used for ordering.
type DisplayGym struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Address       string       `json:"address"`
	Rating        float64      `json:"rating"`
	Type          string       `json:"type"`
	PriceLevel    string       `json:"priceLevel"`
	Lat           float64      `json:"lat"`
	Lng           float64      `json:"lng"`
	Distance      float64      `json:"distance"`
	ExactDistance float64      `json:"-"`
	Photos        []string     `json:"photos"`
	Website       string       `json:"website,omitempty"`
	LowestPrice   *float64     `json:"lowest_price,omitempty"`
	Memberships   []Membership `json:"memberships,omitempty"`
	Price         PriceQuote   `json:"price"`
}
