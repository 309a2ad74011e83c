package sir

import (
	"sir-ca/internal/core"
	"sir-ca/internal/fractal"
)

// State is the health status of one lattice cell.
type State uint8

const (
	Susceptible State = iota
	Infected
	Recovered
)

func (s State) String() string {
	switch s {
	case Susceptible:
		return "susceptible"
	case Infected:
		return "infected"
	case Recovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Counts holds the population of each state.
type Counts struct {
	S, I, R int
}

// Total returns S+I+R.
func (c Counts) Total() int { return c.S + c.I + c.R }

// Initialize returns a size×size grid that is entirely susceptible apart from
// a single infected cell at (size/2, size/2).
func Initialize(size int) *core.ByteGrid {
	g := core.NewByteGrid(size, size)
	plantSeed(g)
	return g
}

func plantSeed(g *core.ByteGrid) {
	g.Fill(uint8(Susceptible))
	g.Set(g.W/2, g.H/2, uint8(Infected))
}

// Census counts every state on g.
func Census(g *core.ByteGrid) Counts {
	var c Counts
	for _, v := range g.Cells() {
		switch State(v) {
		case Susceptible:
			c.S++
		case Infected:
			c.I++
		case Recovered:
			c.R++
		}
	}
	return c
}

// StateMask marks every cell of g that holds s.
func StateMask(g *core.ByteGrid, s State) fractal.Mask {
	m := fractal.NewMask(g.W, g.H)
	for i, v := range g.Cells() {
		m.Cells[i] = State(v) == s
	}
	return m
}
