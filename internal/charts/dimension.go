package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"sir-ca/internal/fractal"
)

// DimensionPlot saves mean fractal dimension against β with ±std error bars.
// Points with a non-finite mean are left out.
func DimensionPlot(path string, betas, means, stds []float64) error {
	if len(betas) != len(means) || len(betas) != len(stds) {
		return fmt.Errorf("charts: column lengths differ (%d, %d, %d)", len(betas), len(means), len(stds))
	}
	pts := make(plotter.XYs, 0, len(betas))
	errs := make(plotter.YErrors, 0, len(betas))
	for k, b := range betas {
		if !finite(means[k]) {
			continue
		}
		s := stds[k]
		if !finite(s) {
			s = 0
		}
		pts = append(pts, plotter.XY{X: b, Y: means[k]})
		errs = append(errs, struct{ Low, High float64 }{Low: s, High: s})
	}
	if len(pts) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Fractal dimension vs transmission rate"
	p.X.Label.Text = "β"
	p.Y.Label.Text = "Fractal dimension D"
	p.Add(plotter.NewGrid())

	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("charts: dimension points: %w", err)
	}
	line.Color = plotutil.Color(0)
	scatter.Color = plotutil.Color(0)

	bars, err := plotter.NewYErrorBars(struct {
		plotter.XYs
		plotter.YErrors
	}{pts, errs})
	if err != nil {
		return fmt.Errorf("charts: error bars: %w", err)
	}
	p.Add(line, scatter, bars)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("charts: save %s: %w", path, err)
	}
	return nil
}

// BoxCountPlot saves the log-log box counts of est together with the fitted
// line.
func BoxCountPlot(path string, est fractal.Estimate) error {
	if len(est.Sizes) < 2 || len(est.Sizes) != len(est.Counts) || !finite(est.D) {
		return ErrNoData
	}
	pts := make(plotter.XYs, len(est.Sizes))
	for k := range est.Sizes {
		pts[k].X = math.Log(1 / float64(est.Sizes[k]))
		pts[k].Y = math.Log(float64(est.Counts[k]))
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Box counting: D = %.3f (R² = %.4f)", est.D, est.R2)
	p.X.Label.Text = "log(1/ε)"
	p.Y.Label.Text = "log N(ε)"

	if err := plotutil.AddScatters(p, "box counts", pts); err != nil {
		return fmt.Errorf("charts: box counts: %w", err)
	}
	fit := plotter.NewFunction(func(x float64) float64 { return est.Intercept + est.D*x })
	fit.Color = plotutil.Color(1)
	fit.Dashes = plotutil.Dashes(1)
	p.Add(fit)
	p.Legend.Add("least squares", fit)
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("charts: save %s: %w", path, err)
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
