package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"gf-server/models"
)

// PlotGyms renders ranked gyms around the search origin as an HTML geo chart.
func PlotGyms(w io.Writer, origin models.LatLng, gyms []models.DisplayGym) error {
	points := make([]opts.GeoData, 0, len(gyms))
	for i, g := range gyms {
		points = append(points, opts.GeoData{
			Name:  fmt.Sprintf("%d. %s (%.1f mi)", i+1, g.Name, g.Distance),
			Value: []float64{g.Lng, g.Lat, g.Distance},
		})
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Ranked Gyms",
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Ranked gyms",
			Subtitle: fmt.Sprintf("origin %.4f, %.4f - %d results", origin.Lat, origin.Lng, len(gyms)),
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("Origin", types.ChartEffectScatter, []opts.GeoData{
		{Name: "origin", Value: []float64{origin.Lng, origin.Lat, 0}},
	})
	geo.AddSeries("Gyms", types.ChartScatter, points,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(false),
			Formatter: "{b}",
		}),
	)

	if err := geo.Render(w); err != nil {
		return fmt.Errorf("failed to render gym plot: %w", err)
	}
	return nil
}
