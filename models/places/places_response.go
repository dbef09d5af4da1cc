package places

import "encoding/json"

// SearchResponse is the body of places:searchNearby and places:searchText.
// Places is kept raw so a non-array payload can be coerced to no results.
type SearchResponse struct {
	Places        json.RawMessage `json:"places"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

type Place struct {
	ID                string             `json:"id"`
	DisplayName       LocalizedText      `json:"displayName"`
	FormattedAddress  string             `json:"formattedAddress"`
	ShortAddress      string             `json:"shortFormattedAddress,omitempty"`
	AddressComponents []AddressComponent `json:"addressComponents,omitempty"`
	Location          Location           `json:"location"`
	Rating            float64            `json:"rating,omitempty"`
	UserRatingCount   int                `json:"userRatingCount,omitempty"`
	PriceLevel        string             `json:"priceLevel,omitempty"`
	PrimaryType       string             `json:"primaryType,omitempty"`
	Types             []string           `json:"types,omitempty"`
	Photos            []Photo            `json:"photos,omitempty"`
	WebsiteURI        string             `json:"websiteUri,omitempty"`
	GoogleMapsURI     string             `json:"googleMapsUri,omitempty"`
}

type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

type AddressComponent struct {
	LongText  string   `json:"longText"`
	ShortText string   `json:"shortText"`
	Types     []string `json:"types"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Photo struct {
	Name     string `json:"name"`
	WidthPx  int    `json:"widthPx,omitempty"`
	HeightPx int    `json:"heightPx,omitempty"`
}
