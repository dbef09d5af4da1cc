package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gf-server/models"
)

func TestPlotGyms(t *testing.T) {
	var buf bytes.Buffer
	gyms := []models.DisplayGym{
		{ID: "a", Name: "PureGym Soho", Lat: 51.51, Lng: -0.13, Distance: 0.4},
		{ID: "b", Name: "Gymbox Holborn", Lat: 51.52, Lng: -0.12, Distance: 0.9},
	}

	err := PlotGyms(&buf, models.LatLng{Lat: 51.5074, Lng: -0.1278}, gyms)

	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, "Ranked Gyms")
	assert.Contains(t, html, "PureGym Soho")
}
