package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadRawListingsFromJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIDs []string
	}{
		{"bare array", `[{"id":"a","name":"A","lat":51.5,"lng":-0.1},{"id":"b","name":"B"}]`, []string{"a", "b"}},
		{"wrapped results", `{"results":[{"id":"c","name":"C","location":{"lat":1,"lng":2}}]}`, []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listings, err := ReadRawListingsFromJSON(writeFixture(t, "listings.json", tt.content))
			require.NoError(t, err)
			var ids []string
			for _, l := range listings {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestReadRawListingsFromJSON_Errors(t *testing.T) {
	_, err := ReadRawListingsFromJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = ReadRawListingsFromJSON(writeFixture(t, "bad.json", `"nope"`))
	assert.Error(t, err)
}

func TestReadLiveFeedFromJSON(t *testing.T) {
	path := writeFixture(t, "feed.json", `{"g1":{"prices":[{"name":"Core","price":22.5}],"joiningfees":10}}`)

	feed, err := ReadLiveFeedFromJSON(path)

	require.NoError(t, err)
	entry, ok := feed.Lookup("g1")
	require.True(t, ok)
	assert.Equal(t, 22.5, entry.Prices[0].Price)
	assert.Equal(t, 10.0, entry.JoiningFees)
}

func TestReadPlacesSearchResponseFromJSON(t *testing.T) {
	path := writeFixture(t, "places.json", `{"places":[{"id":"p1","displayName":{"text":"Gym"}}]}`)

	resp, err := ReadPlacesSearchResponseFromJSON(path)

	require.NoError(t, err)
	assert.Contains(t, string(resp.Places), `"p1"`)
}
