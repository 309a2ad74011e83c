package sir

import (
	"math/rand/v2"

	"sir-ca/internal/core"
)

// Trajectory stores the population of each state, one entry per recorded step.
type Trajectory struct {
	S, I, R []int
}

// Len returns the number of recorded steps.
func (t Trajectory) Len() int { return len(t.I) }

// At returns the counts recorded at step i.
func (t Trajectory) At(i int) Counts { return Counts{S: t.S[i], I: t.I[i], R: t.R[i]} }

func (t *Trajectory) append(c Counts) {
	t.S = append(t.S, c.S)
	t.I = append(t.I, c.I)
	t.R = append(t.R, c.R)
}

// Result captures one stochastic run.
type Result struct {
	Trajectory Trajectory

	// Peak is a copy of the grid at the first step whose infected count
	// exceeded every earlier one. It is nil only when no step was recorded.
	Peak         *core.ByteGrid
	PeakInfected int
	PeakStep     int

	// Steps is the number of recorded steps, at most MaxSteps.
	Steps int
	// Extinct reports that the run stopped because no cell was infected.
	Extinct bool
}

// FinalCounts returns the populations at the last recorded step.
func (r Result) FinalCounts() Counts {
	if r.Trajectory.Len() == 0 {
		return Counts{}
	}
	return r.Trajectory.At(r.Trajectory.Len() - 1)
}

// AttackRate returns the fraction of cells that were ever infected by the end
// of the run.
func (r Result) AttackRate() float64 {
	c := r.FinalCounts()
	if c.Total() == 0 {
		return 0
	}
	return float64(c.I+c.R) / float64(c.Total())
}

// Observer is called once per recorded step with the live epidemic. It must
// not modify the grid.
type Observer func(step int, e *Epidemic)

// Run simulates one epidemic from the single-seed grid with the parameters in
// cfg, drawing randomness from rng. Each iteration records the counts, updates
// the peak snapshot, stops if the infection died out and otherwise advances
// the lattice.
func Run(cfg Config, rng *rand.Rand, observe Observer) Result {
	e := NewWithRand(cfg, rng)
	res := Result{PeakStep: -1}

	for step := 0; step < cfg.Params.MaxSteps; step++ {
		c := e.Counts()
		res.Trajectory.append(c)
		if observe != nil {
			observe(step, e)
		}

		if c.I > res.PeakInfected {
			res.PeakInfected = c.I
			res.PeakStep = step
			if res.Peak == nil {
				res.Peak = e.Grid().Clone()
			} else {
				res.Peak.CopyFrom(e.Grid())
			}
		}

		if c.I == 0 {
			res.Extinct = true
			break
		}

		e.Step()
	}

	res.Steps = res.Trajectory.Len()
	return res
}
