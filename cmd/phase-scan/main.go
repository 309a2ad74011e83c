package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"sir-ca/internal/sims/sir"
	"sir-ca/internal/sweep"
	pkgcore "sir-ca/pkg/core"
)

type paramSet struct {
	index int
	beta  float64
	gamma float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("β=%.2f γ=%.2f", p.beta, p.gamma)
}

type scenarioResult struct {
	params      paramSet
	outbreaks   int
	runs        int
	attackRate  float64
	meanPeak    float64
	meanPeakT   float64
	meanD       float64
	dimSamples  int
	extinctions int
}

func (r scenarioResult) outbreakProbability() float64 {
	if r.runs == 0 {
		return 0
	}
	return float64(r.outbreaks) / float64(r.runs)
}

func main() {
	size := flag.Int("l", 100, "lattice side length")
	steps := flag.Int("steps", 300, "step horizon per run")
	runs := flag.Int("runs", 20, "runs per (β, γ) pair")
	minPeak := flag.Int("min-peak", 5, "smallest peak infected count treated as an outbreak")
	betaList := flag.String("betas", "0.05:0.50:0.05", "β values as start:stop:step or a comma list")
	gammaList := flag.String("gammas", "0.1,0.2,0.3", "γ values as start:stop:step or a comma list")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1337, "base seed")
	flag.Parse()

	betas, err := parseValues(*betaList)
	if err != nil {
		log.Fatalf("betas: %v", err)
	}
	gammas, err := parseValues(*gammaList)
	if err != nil {
		log.Fatalf("gammas: %v", err)
	}

	base := sir.DefaultConfig()
	base.Size = *size
	base.Params.MaxSteps = *steps

	var sets []paramSet
	for _, g := range gammas {
		for _, b := range betas {
			sets = append(sets, paramSet{index: len(sets), beta: b, gamma: g})
		}
	}

	fmt.Printf("Scanning %d parameter pairs (%d runs each, %d workers, %d steps)\n", len(sets), *runs, *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, *runs, *minPeak, *seed)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].params.gamma != all[j].params.gamma {
			return all[i].params.gamma < all[j].params.gamma
		}
		return all[i].params.beta < all[j].params.beta
	})
	elapsed := time.Since(start)

	fmt.Printf("\nResults (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, res := range all {
		fmt.Printf("%s  P(outbreak)=%.2f  attack=%.3f  peak=%.1f@%.1f  D=%.3f (%d)  extinct=%d/%d\n",
			res.params, res.outbreakProbability(), res.attackRate, res.meanPeak, res.meanPeakT, res.meanD, res.dimSamples, res.extinctions, res.runs)
	}

	fmt.Println("\nCritical β estimates (first β with P(outbreak) ≥ 0.5):")
	for _, g := range gammas {
		crit := math.NaN()
		for _, res := range all {
			if res.params.gamma == g && res.outbreakProbability() >= 0.5 {
				crit = res.params.beta
				break
			}
		}
		if math.IsNaN(crit) {
			fmt.Printf("  γ=%.2f: not reached in range\n", g)
			continue
		}
		fmt.Printf("  γ=%.2f: β_c ≈ %.2f (β_c/γ = %.2f)\n", g, crit, crit/g)
	}
}

func runScenario(base sir.Config, params paramSet, runs, minPeak int, seed int64) scenarioResult {
	cfg := base
	cfg.Params.Beta = params.beta
	cfg.Params.Gamma = params.gamma

	out := scenarioResult{params: params, runs: runs}
	var dims []float64
	for run := 0; run < runs; run++ {
		rng := pkgcore.NewRNG(pkgcore.DeriveSeed(seed, params.index, run)).Source()
		res := sir.Run(cfg, rng, nil)
		out.attackRate += res.AttackRate()
		out.meanPeak += float64(res.PeakInfected)
		out.meanPeakT += float64(res.PeakStep)
		if res.Extinct {
			out.extinctions++
		}
		if !sweep.Accept(res, minPeak) {
			continue
		}
		out.outbreaks++
		if d, err := sweep.PeakDimension(res.Peak); err == nil {
			dims = append(dims, d)
		}
	}
	if runs > 0 {
		out.attackRate /= float64(runs)
		out.meanPeak /= float64(runs)
		out.meanPeakT /= float64(runs)
	}
	out.meanD, _ = sweep.Summarize(dims)
	out.dimSamples = len(dims)
	return out
}

// parseValues accepts "start:stop:step" (inclusive) or "a,b,c".
func parseValues(list string) ([]float64, error) {
	if parts := strings.Split(list, ":"); len(parts) == 3 {
		var vals [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("parse %q: %w", p, err)
			}
			vals[i] = v
		}
		return sweep.BetaRange(vals[0], vals[1], vals[2]), nil
	}
	var out []float64
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no values in %q", list)
	}
	return out, nil
}
