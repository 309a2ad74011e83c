package sir

import (
	"math/rand/v2"

	"sir-ca/internal/core"
	pkgcore "sir-ca/pkg/core"
)

// Epidemic is a spatial SIR cellular automaton on a square lattice.
type Epidemic struct {
	cfg Config

	size int

	cur       *core.ByteGrid
	nxt       *core.ByteGrid
	neighbors []uint8
	infDraws  []float64
	recDraws  []float64

	step int
	rng  *rand.Rand
}

// New returns an Epidemic of the given lattice size using defaults.
func New(size int) *Epidemic {
	cfg := DefaultConfig()
	cfg.Size = size
	return NewWithConfig(cfg)
}

// NewWithConfig returns an Epidemic seeded from cfg.Seed.
func NewWithConfig(cfg Config) *Epidemic {
	return NewWithRand(cfg, pkgcore.NewRNG(cfg.Seed).Source())
}

// NewWithRand returns an Epidemic that draws from rng. The generator is
// shared, not copied: callers that reuse rng across runs get one continuous
// stream.
func NewWithRand(cfg Config, rng *rand.Rand) *Epidemic {
	size := cfg.Size
	if size <= 0 {
		size = 1
	}
	cfg.Size = size
	total := size * size
	e := &Epidemic{
		cfg:       cfg,
		size:      size,
		cur:       core.NewByteGrid(size, size),
		nxt:       core.NewByteGrid(size, size),
		neighbors: make([]uint8, total),
		infDraws:  make([]float64, total),
		recDraws:  make([]float64, total),
		rng:       rng,
	}
	plantSeed(e.cur)
	return e
}

// Name returns the simulation identifier.
func (e *Epidemic) Name() string { return "sir" }

// Size reports the grid dimensions.
func (e *Epidemic) Size() core.Size { return core.Size{W: e.size, H: e.size} }

// Cells exposes the current state buffer.
func (e *Epidemic) Cells() []uint8 { return e.cur.Cells() }

// Grid exposes the current grid. It is overwritten by the next Step.
func (e *Epidemic) Grid() *core.ByteGrid { return e.cur }

// Config returns the active configuration.
func (e *Epidemic) Config() Config { return e.cfg }

// StepCount returns how many updates have been applied since the last reset.
func (e *Epidemic) StepCount() int { return e.step }

// Counts returns the current S/I/R populations.
func (e *Epidemic) Counts() Counts { return Census(e.cur) }

// Reset reseeds the generator and restores the single-seed initial grid. A
// zero seed falls back to the configured seed.
func (e *Epidemic) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = e.cfg.Seed
	}
	e.rng = pkgcore.NewRNG(effective).Source()
	e.restart()
}

func (e *Epidemic) restart() {
	plantSeed(e.cur)
	e.nxt.Fill(uint8(Susceptible))
	e.step = 0
}

// Step advances every cell synchronously by one tick.
func (e *Epidemic) Step() {
	advance(e.cur, e.nxt, e.neighbors, e.infDraws, e.recDraws, e.cfg.Params, e.rng)
	e.cur, e.nxt = e.nxt, e.cur
	e.step++
}

// Update returns the grid that follows cur under p. cur is not modified. The
// generator advances by exactly 2*W*H draws.
func Update(cur *core.ByteGrid, p Params, rng *rand.Rand) *core.ByteGrid {
	total := len(cur.Cells())
	next := core.NewByteGrid(cur.W, cur.H)
	advance(cur, next, make([]uint8, total), make([]float64, total), make([]float64, total), p, rng)
	return next
}

// advance writes the successor of cur into nxt. All infection draws are taken
// before all recovery draws, one per cell each, whether or not the cell can
// use them.
func advance(cur, nxt *core.ByteGrid, neighbors []uint8, infDraws, recDraws []float64, p Params, rng *rand.Rand) {
	countInfectedNeighbors(cur, p.Boundary, neighbors)
	pkgcore.FillUniform(rng, infDraws)
	pkgcore.FillUniform(rng, recDraws)

	src := cur.Cells()
	dst := nxt.Cells()
	copy(dst, src)
	for i, v := range src {
		switch State(v) {
		case Susceptible:
			if neighbors[i] > 0 && infDraws[i] < p.Beta {
				dst[i] = uint8(Infected)
			}
		case Infected:
			if recDraws[i] < p.Gamma {
				dst[i] = uint8(Recovered)
			}
		}
	}
}

var _ core.Sim = (*Epidemic)(nil)
