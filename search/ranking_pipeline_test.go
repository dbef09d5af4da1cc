package search

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gf-server/models"
)

var london = models.LatLng{Lat: 51.5074, Lng: -0.1278}

func TestPipeline_Rank_EndToEnd(t *testing.T) {
	p := NewPipeline(MustDefaultRules(), 0)
	listings := []models.RawListing{
		{
			ID: "pg-oxford", Name: "PureGym Oxford Street", City: "London",
			Address: "Oxford St, London", Lat: 51.515, Lng: -0.13, Rating: 4.5, UserRatingsTotal: 200,
		},
		{ID: "better-hackney", Name: "better gym Hackney", City: "London", Lat: 51.545, Lng: -0.05},
	}

	got := p.Rank(listings, london, "", nil)

	require.Len(t, got, 1)
	assert.Equal(t, "PureGym Oxford Street", got[0].Name)
	require.NotNil(t, got[0].Price.Monthly)
	assert.InDelta(t, 20.99, *got[0].Price.Monthly, 1e-9)
	assert.True(t, got[0].Price.IsEstimate)
	assert.Equal(t, "£", got[0].PriceLevel)
	assert.Equal(t, "Oxford St, London", got[0].Address)
	assert.Equal(t, "gym", got[0].Type)
	assert.NotNil(t, got[0].Photos)
}

func TestPipeline_Rank_SortedByDistanceThenPrice(t *testing.T) {
	p := NewPipeline(MustDefaultRules(), 0)
	// Same spot for the first three so distance ties and price decides.
	listings := []models.RawListing{
		{ID: "dl", Name: "David Lloyd Kensington", Address: "a", Lat: 51.50, Lng: -0.19, UserRatingsTotal: 9},
		{ID: "pg", Name: "PureGym Kensington", Address: "b", Lat: 51.50, Lng: -0.19, UserRatingsTotal: 9},
		{ID: "va", Name: "Virgin Active Kensington", Address: "c", Lat: 51.50, Lng: -0.19, UserRatingsTotal: 9},
		{ID: "near", Name: "Gymbox Holborn", Address: "d", Lat: 51.5075, Lng: -0.128},
		{ID: "far", Name: "Anytime Fitness Croydon", Address: "e", Lat: 51.37, Lng: -0.10, UserRatingsTotal: 4},
	}

	got := p.Rank(listings, london, "", nil)

	require.Len(t, got, 5)
	assert.Equal(t, "near", got[0].ID)
	assert.Equal(t, []string{"pg", "va", "dl"}, []string{got[1].ID, got[2].ID, got[3].ID})
	assert.Equal(t, "far", got[4].ID)
	assertRankedOrder(t, got)
}

func TestSortByDistance_ToleranceSpansRoundingEdge(t *testing.T) {
	price := func(f float64) *float64 { return &f }
	gyms := []models.DisplayGym{
		{ID: "far", ExactDistance: 0.52, Distance: 0.5, Price: models.PriceQuote{Monthly: price(15)}},
		{ID: "dear", ExactDistance: 0.1403, Distance: 0.1, Price: models.PriceQuote{Monthly: price(60)}},
		{ID: "unpriced", ExactDistance: 0.1500, Distance: 0.2},
		{ID: "cheap", ExactDistance: 0.1603, Distance: 0.2, Price: models.PriceQuote{Monthly: price(20.99)}},
	}

	SortByDistance(gyms)

	ids := make([]string, 0, len(gyms))
	for _, g := range gyms {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{"cheap", "dear", "unpriced", "far"}, ids)
	assertRankedOrder(t, gyms)
}

func TestSortByDistance_StableForEqualKeys(t *testing.T) {
	price := 30.0
	gyms := []models.DisplayGym{
		{ID: "first", ExactDistance: 1.0, Price: models.PriceQuote{Monthly: &price}},
		{ID: "second", ExactDistance: 1.0, Price: models.PriceQuote{Monthly: &price}},
	}

	SortByDistance(gyms)

	assert.Equal(t, "first", gyms[0].ID)
	assert.Equal(t, "second", gyms[1].ID)
}

func TestPipeline_Rank_QueryAndFeed(t *testing.T) {
	p := NewPipeline(MustDefaultRules(), 0)
	listings := []models.RawListing{
		{ID: "indie", Name: "Iron Temple Soho", City: "London", Address: "x", Lat: 51.51, Lng: -0.13},
		{ID: "pg", Name: "PureGym Soho", City: "London", Address: "y", Lat: 51.51, Lng: -0.13, UserRatingsTotal: 1},
		{ID: "other", Name: "JD Gym Leeds", City: "Leeds", Address: "z", Lat: 53.8, Lng: -1.55, UserRatingsTotal: 1},
	}
	feed := models.LiveFeed{"indie": {Prices: []models.LivePrice{{Name: "Monthly", Price: 45}}}}

	got := p.Rank(listings, london, "london", feed)

	require.Len(t, got, 2)
	assert.Equal(t, "pg", got[0].ID)
	assert.Equal(t, "indie", got[1].ID)
	assert.False(t, got[1].Price.IsEstimate)
	assert.Equal(t, "£££", got[1].PriceLevel)

	// Without a live price the independent gym has nothing to show.
	got = p.Rank(listings, london, "soho", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "pg", got[0].ID)
}

func TestPipeline_Rank_DeduplicatesAndCaps(t *testing.T) {
	p := NewPipeline(MustDefaultRules(), 3)
	var listings []models.RawListing
	for i := 0; i < 10; i++ {
		listings = append(listings, models.RawListing{
			ID:   fmt.Sprintf("pg-%d", i%5),
			Name: fmt.Sprintf("PureGym Branch %d", i),
			Lat:  51.5 + float64(i)/100, Lng: -0.12, UserRatingsTotal: 10, Address: "somewhere",
		})
	}

	got, stats := p.RankWithStats(listings, london, "", nil)

	assert.Len(t, got, 3)
	assert.Equal(t, 10, stats.Input)
	assert.Equal(t, 10, stats.Quality)
	assert.Equal(t, 3, stats.Output)
	seen := map[string]bool{}
	for _, g := range got {
		assert.False(t, seen[g.ID], "duplicate id %s", g.ID)
		seen[g.ID] = true
	}
}

func TestPipeline_Rank_DefaultLimit(t *testing.T) {
	p := NewPipeline(MustDefaultRules(), 0)
	var listings []models.RawListing
	for i := 0; i < 150; i++ {
		listings = append(listings, models.RawListing{
			ID: fmt.Sprintf("g-%d", i), Name: "PureGym", Lat: 51.5, Lng: -0.1 - float64(i)/1000, UserRatingsTotal: 1, Address: "a",
		})
	}

	got := p.Rank(listings, london, "", nil)

	assert.Len(t, got, DefaultResultLimit)
	assertRankedOrder(t, got)
}

func TestPipeline_Rank_EmptyInput(t *testing.T) {
	p := NewPipeline(MustDefaultRules(), 0)

	got := p.Rank(nil, london, "anything", nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPriceLevelSymbol(t *testing.T) {
	price := func(f float64) models.PriceQuote { return models.PriceQuote{Monthly: &f} }

	assert.Equal(t, "££", PriceLevelSymbol(2, models.PriceQuote{}))
	assert.Equal(t, "££££", PriceLevelSymbol(4, price(10)))
	assert.Equal(t, "£", PriceLevelSymbol(0, price(19.99)))
	assert.Equal(t, "££", PriceLevelSymbol(0, price(39.99)))
	assert.Equal(t, "£££", PriceLevelSymbol(0, price(60)))
	assert.Equal(t, "££££", PriceLevelSymbol(0, price(190)))
	assert.Equal(t, "", PriceLevelSymbol(0, models.PriceQuote{}))
}

func assertRankedOrder(t *testing.T, gyms []models.DisplayGym) {
	t.Helper()
	for i := 1; i < len(gyms); i++ {
		a, b := gyms[i-1], gyms[i]
		if math.Abs(a.ExactDistance-b.ExactDistance) < DistanceTieMiles {
			require.LessOrEqual(t, monthlyOrInf(a), monthlyOrInf(b), "price tie-break at %d", i)
			continue
		}
		require.Less(t, a.ExactDistance, b.ExactDistance, "distance order at %d", i)
	}
}
