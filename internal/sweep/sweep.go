// Package sweep runs many stochastic epidemics per transmission rate and
// aggregates the fractal dimension of their peak infection patterns.
package sweep

import (
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"sir-ca/internal/core"
	"sir-ca/internal/fractal"
	"sir-ca/internal/sims/sir"
	pkgcore "sir-ca/pkg/core"
)

// Config describes a β sweep.
type Config struct {
	// Sim is the base simulation config; its Beta is replaced per point.
	Sim   sir.Config
	Betas []float64
	// Runs is the number of stochastic runs per β.
	Runs int
	// MinPeak is the smallest peak infected count that counts as an outbreak.
	MinPeak int
	// Workers bounds how many runs execute concurrently.
	Workers int
	// Seed roots every per-run stream.
	Seed int64
}

// DefaultConfig returns the reference experiment: β from 0.05 to 0.50 in
// steps of 0.01, 30 runs each, on the default lattice.
func DefaultConfig() Config {
	sim := sir.DefaultConfig()
	return Config{
		Sim:     sim,
		Betas:   BetaRange(0.05, 0.50, 0.01),
		Runs:    30,
		MinPeak: 5,
		Workers: 1,
		Seed:    sim.Seed,
	}
}

// Point aggregates the accepted runs of one β value.
type Point struct {
	Beta float64
	// Samples holds one dimension estimate per accepted run, in run order.
	Samples  []float64
	Mean     float64
	Std      float64
	Accepted int
	Rejected int
	// MeanPeak is the average peak infected count over all runs.
	MeanPeak float64
}

// Progress receives each finished point, in β order.
type Progress func(Point)

// BetaRange returns start, start+step, ... up to stop inclusive. Values are
// generated from their index so the end point does not drift.
func BetaRange(start, stop, step float64) []float64 {
	if step <= 0 || stop < start {
		return []float64{start}
	}
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Round((start+float64(i)*step)*1e9) / 1e9
	}
	return out
}

// Accept reports whether a run produced a real outbreak.
func Accept(res sir.Result, minPeak int) bool {
	return res.Peak != nil && res.PeakInfected >= minPeak
}

// PeakDimension returns the box-counting dimension of the infected cells of
// a peak snapshot.
func PeakDimension(peak *core.ByteGrid) (float64, error) {
	return fractal.Dimension(sir.StateMask(peak, sir.Infected))
}

// Run executes the sweep. Points are processed one β at a time; runs within a
// point may execute concurrently but each draws from its own stream, so the
// output does not depend on Workers.
func Run(cfg Config, progress Progress) []Point {
	points := make([]Point, 0, len(cfg.Betas))
	for i, beta := range cfg.Betas {
		p := runPoint(cfg, i, beta)
		points = append(points, p)
		if progress != nil {
			progress(p)
		}
	}
	return points
}

type runOutcome struct {
	dim      float64
	peak     int
	accepted bool
}

func runPoint(cfg Config, index int, beta float64) Point {
	simCfg := cfg.Sim
	simCfg.Params.Beta = beta

	outcomes := make([]runOutcome, cfg.Runs)
	var g errgroup.Group
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)
	for run := 0; run < cfg.Runs; run++ {
		g.Go(func() error {
			rng := pkgcore.NewRNG(pkgcore.DeriveSeed(cfg.Seed, index, run)).Source()
			res := sir.Run(simCfg, rng, nil)
			out := runOutcome{peak: res.PeakInfected}
			if Accept(res, cfg.MinPeak) {
				if d, err := PeakDimension(res.Peak); err == nil {
					out.dim = d
					out.accepted = true
				}
			}
			outcomes[run] = out
			return nil
		})
	}
	_ = g.Wait()

	p := Point{Beta: beta}
	peakSum := 0
	for _, out := range outcomes {
		peakSum += out.peak
		if !out.accepted {
			p.Rejected++
			continue
		}
		p.Samples = append(p.Samples, out.dim)
		p.Accepted++
	}
	if cfg.Runs > 0 {
		p.MeanPeak = float64(peakSum) / float64(cfg.Runs)
	}
	p.Mean, p.Std = Summarize(p.Samples)
	return p
}

// Summarize returns the mean and population standard deviation of xs, or NaN
// for both when xs is empty.
func Summarize(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	return stat.PopMeanStdDev(xs, nil)
}

// Series splits points into the β, mean and standard deviation columns.
func Series(points []Point) (betas, means, stds []float64) {
	betas = make([]float64, len(points))
	means = make([]float64, len(points))
	stds = make([]float64, len(points))
	for i, p := range points {
		betas[i] = p.Beta
		means[i] = p.Mean
		stds[i] = p.Std
	}
	return betas, means, stds
}

// Parameters groups the sweep settings for display.
func (c Config) Parameters() core.ParameterSnapshot {
	snap := c.Sim.Parameters()
	group := core.ParameterGroup{Name: "Sweep", Params: []core.Parameter{
		core.IntParam("runs", "Runs per β", c.Runs),
		core.IntParam("min_peak", "Outbreak threshold", c.MinPeak),
		core.IntParam("workers", "Workers", c.Workers),
		core.Int64Param("sweep_seed", "Sweep seed", c.Seed),
	}}
	if len(c.Betas) > 0 {
		group.Params = append(group.Params,
			core.FloatParam("beta_min", "First β", c.Betas[0]),
			core.FloatParam("beta_max", "Last β", c.Betas[len(c.Betas)-1]),
			core.IntParam("beta_points", "β points", len(c.Betas)),
		)
	}
	snap.Groups = append(snap.Groups, group)
	return snap
}
