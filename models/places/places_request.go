package places

// Circle is a center + radius area used for restrictions and biases.
type Circle struct {
	Center Location `json:"center"`
	Radius float64  `json:"radius"`
}

type Area struct {
	Circle Circle `json:"circle"`
}

// SearchNearbyRequest is the body of POST /places:searchNearby.
type SearchNearbyRequest struct {
	IncludedTypes       []string `json:"includedTypes"`
	MaxResultCount      int      `json:"maxResultCount"`
	LocationRestriction Area     `json:"locationRestriction"`
	RankPreference      string   `json:"rankPreference,omitempty"`
}

// SearchTextRequest is the body of POST /places:searchText.
type SearchTextRequest struct {
	TextQuery    string `json:"textQuery"`
	IncludedType string `json:"includedType,omitempty"`
	PageSize     int    `json:"pageSize,omitempty"`
	LocationBias Area   `json:"locationBias"`
	RegionCode   string `json:"regionCode,omitempty"`
}
