// Package charts draws the epidemic curves and sweep statistics.
package charts

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrTooShort is returned for series with fewer than two samples.
	ErrTooShort = errors.New("charts: need at least two samples")
	// ErrNoData is returned when every point was filtered out.
	ErrNoData = errors.New("charts: no finite data points")
)

var colorSusceptible = drawing.Color{R: 60, G: 110, B: 200, A: 255}

// TimeSeries renders S, I and R population curves as a PNG.
func TimeSeries(w io.Writer, title string, s, i, r []int) error {
	n := len(i)
	if n < 2 || len(s) != n || len(r) != n {
		return ErrTooShort
	}
	steps := make([]float64, n)
	for k := range steps {
		steps[k] = float64(k)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  960,
		Height: 480,
		XAxis: chart.XAxis{
			Name:  "Step",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Population",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Susceptible",
				XValues: steps,
				YValues: toFloats(s),
				Style:   chart.Style{StrokeColor: colorSusceptible, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "Infected",
				XValues: steps,
				YValues: toFloats(i),
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "Recovered",
				XValues: steps,
				YValues: toFloats(r),
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("charts: render time series: %w", err)
	}
	return nil
}

func toFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for k, v := range xs {
		out[k] = float64(v)
	}
	return out
}
