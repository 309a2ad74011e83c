package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"sir-ca/internal/charts"
	"sir-ca/internal/core"
	"sir-ca/internal/fractal"
	"sir-ca/internal/render"
	"sir-ca/internal/sims/sir"
	"sir-ca/internal/sweep"
	pkgcore "sir-ca/pkg/core"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	def := sweep.DefaultConfig()

	size := flag.Int("l", def.Sim.Size, "lattice side length")
	beta := flag.Float64("beta", def.Sim.Params.Beta, "infection probability for the demonstration run")
	gamma := flag.Float64("gamma", def.Sim.Params.Gamma, "recovery probability")
	steps := flag.Int("steps", def.Sim.Params.MaxSteps, "step horizon per run")
	boundary := flag.String("boundary", def.Sim.Params.Boundary.String(), "edge handling: fill or wrap")
	seed := flag.Int64("seed", def.Seed, "seed for the demonstration run and the sweep streams")
	runs := flag.Int("runs", def.Runs, "runs per β in the sweep")
	minPeak := flag.Int("min-peak", def.MinPeak, "smallest peak infected count treated as an outbreak")
	betaMin := flag.Float64("beta-min", 0.05, "first β of the sweep")
	betaMax := flag.Float64("beta-max", 0.50, "last β of the sweep (inclusive)")
	betaStep := flag.Float64("beta-step", 0.01, "β increment")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent runs per β")
	outDir := flag.String("out", "out", "directory for images")
	scale := flag.Int("scale", 3, "pixel scale for grid images")
	movie := flag.Bool("movie", false, "record the demonstration run as an MJPEG AVI")
	noSweep := flag.Bool("no-sweep", false, "only perform the demonstration run")
	var overrides kvList
	flag.Var(&overrides, "set", "simulation override in key=value form (repeatable)")
	flag.Parse()

	b, err := sir.ParseBoundary(*boundary)
	if err != nil {
		log.Fatal(err)
	}

	simCfg := def.Sim
	simCfg.Size = *size
	simCfg.Seed = *seed
	simCfg.Params.Beta = *beta
	simCfg.Params.Gamma = *gamma
	simCfg.Params.MaxSteps = *steps
	simCfg.Params.Boundary = b
	if len(overrides) > 0 {
		kv := map[string]string{}
		for _, o := range overrides {
			parts := strings.SplitN(o, "=", 2)
			if len(parts) != 2 {
				log.Fatalf("bad override %q, expected key=value", o)
			}
			kv[parts[0]] = parts[1]
		}
		sir.ApplyMap(&simCfg, kv)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	cfg := def
	cfg.Sim = simCfg
	cfg.Betas = sweep.BetaRange(*betaMin, *betaMax, *betaStep)
	cfg.Runs = *runs
	cfg.MinPeak = *minPeak
	cfg.Workers = *workers
	cfg.Seed = *seed

	if *noSweep {
		printParams(simCfg.Parameters())
	} else {
		printParams(cfg.Parameters())
	}
	demonstrate(simCfg, *outDir, *scale, *movie)

	if *noSweep {
		return
	}

	fmt.Printf("\nSweeping %d β values (%d runs each, %d workers)\n", len(cfg.Betas), cfg.Runs, cfg.Workers)
	start := time.Now()
	points := sweep.Run(cfg, func(p sweep.Point) {
		fmt.Printf("β = %.2f | D = %.3f ± %.3f (%d/%d runs)\n", p.Beta, p.Mean, p.Std, p.Accepted, p.Accepted+p.Rejected)
	})
	fmt.Printf("Sweep finished in %s\n", time.Since(start).Round(time.Millisecond))

	betas, means, stds := sweep.Series(points)
	path := filepath.Join(*outDir, "dimension.png")
	if err := charts.DimensionPlot(path, betas, means, stds); err != nil {
		log.Printf("skipping dimension plot: %v", err)
		return
	}
	fmt.Printf("Wrote %s\n", path)
}

func demonstrate(cfg sir.Config, outDir string, scale int, withMovie bool) {
	var observe sir.Observer
	var mov *render.Movie
	if withMovie {
		side := cfg.Size * scale
		path := filepath.Join(outDir, "run.avi")
		var err error
		mov, err = render.NewMovie(path, side, side, 10)
		if err != nil {
			log.Fatal(err)
		}
		observe = func(step int, e *sir.Epidemic) {
			frame := render.SimImage(e, e.Palette(), scale)
			c := e.Counts()
			render.Caption(frame, fmt.Sprintf("t=%d", step), fmt.Sprintf("S=%d I=%d R=%d", c.S, c.I, c.R))
			if err := mov.AddFrame(frame); err != nil {
				log.Fatal(err)
			}
		}
	}

	res := sir.Run(cfg, pkgcore.NewRNG(cfg.Seed).Source(), observe)
	final := res.FinalCounts()
	fmt.Printf("\nDemonstration run (β=%.2f): %d steps, peak %d infected at step %d, extinct=%v, attack rate %.3f\n",
		cfg.Params.Beta, res.Steps, res.PeakInfected, res.PeakStep, res.Extinct, res.AttackRate())
	fmt.Printf("Final populations: S=%d I=%d R=%d\n", final.S, final.I, final.R)

	if mov != nil {
		if err := mov.Close(); err != nil {
			log.Fatalf("close movie: %v", err)
		}
		fmt.Printf("Wrote %d frames to %s\n", mov.Frames(), filepath.Join(outDir, "run.avi"))
	}

	tsPath := filepath.Join(outDir, "timeseries.png")
	if err := writeTimeSeries(tsPath, res.Trajectory); err != nil {
		log.Printf("skipping time series: %v", err)
	} else {
		fmt.Printf("Wrote %s\n", tsPath)
	}

	if res.Peak == nil {
		return
	}
	peak := render.GridImage(res.Peak.Cells(), res.Peak.W, res.Peak.H, sir.Palette(), scale)
	render.Caption(peak, "Infection peak", fmt.Sprintf("t=%d I=%d", res.PeakStep, res.PeakInfected))
	peakPath := filepath.Join(outDir, "peak.png")
	if err := render.SavePNG(peakPath, peak); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %s\n", peakPath)

	est, err := fractal.Analyze(sir.StateMask(res.Peak, sir.Infected))
	if err != nil {
		fmt.Printf("Peak box counting unavailable: %v\n", err)
		return
	}
	fmt.Printf("Peak fractal dimension D=%.3f (R²=%.4f, sizes %v, counts %v)\n", est.D, est.R2, est.Sizes, est.Counts)
	boxPath := filepath.Join(outDir, "boxcount.png")
	if err := charts.BoxCountPlot(boxPath, est); err != nil {
		log.Printf("skipping box-count plot: %v", err)
		return
	}
	fmt.Printf("Wrote %s\n", boxPath)
}

func writeTimeSeries(path string, tr sir.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := charts.TimeSeries(f, "Spatial SIR", tr.S, tr.I, tr.R); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printParams(snap core.ParameterSnapshot) {
	fmt.Println("Parameters:")
	for _, g := range snap.Groups {
		fmt.Printf("  %s\n", g.Name)
		for _, p := range g.Params {
			fmt.Printf("    %s=%s\n", p.Key, p.Value)
		}
	}
}
