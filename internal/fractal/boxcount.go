// Package fractal estimates the box-counting dimension of binary occupancy
// masks.
package fractal

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyBox is returned when some box size covers no occupied cell, so
	// log(N) is undefined at that scale.
	ErrEmptyBox = errors.New("fractal: box count is zero at some scale")
	// ErrTooFewScales is returned when fewer than two box sizes are available
	// for the regression.
	ErrTooFewScales = errors.New("fractal: need at least two box sizes")
)

// Mask is a row-major binary occupancy grid.
type Mask struct {
	W, H  int
	Cells []bool
}

// NewMask allocates an empty mask.
func NewMask(w, h int) Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Mask{W: w, H: h, Cells: make([]bool, w*h)}
}

// Occupied returns the number of set cells.
func (m Mask) Occupied() int {
	n := 0
	for _, c := range m.Cells {
		if c {
			n++
		}
	}
	return n
}

// Estimate is the result of a log-log fit.
type Estimate struct {
	// D is the fitted slope of log N(ε) against log(1/ε).
	D         float64
	Intercept float64
	R2        float64

	Sizes  []int
	Counts []int
}

// BoxSizes returns 1, 2, 4, ... up to and including side/2.
func BoxSizes(side int) []int {
	var sizes []int
	for n := 1; n <= side/2; n *= 2 {
		sizes = append(sizes, n)
	}
	return sizes
}

// BoxCount returns how many eps×eps boxes, tiled from (0,0), contain at least
// one occupied cell. Boxes on the right and bottom edges may be partial.
func BoxCount(m Mask, eps int) int {
	if eps <= 0 || m.W == 0 || m.H == 0 {
		return 0
	}
	bw := (m.W + eps - 1) / eps
	bh := (m.H + eps - 1) / eps
	seen := make([]bool, bw*bh)
	count := 0
	for y := 0; y < m.H; y++ {
		row := y * m.W
		brow := (y / eps) * bw
		for x := 0; x < m.W; x++ {
			if !m.Cells[row+x] {
				continue
			}
			b := brow + x/eps
			if !seen[b] {
				seen[b] = true
				count++
			}
		}
	}
	return count
}

// Counts evaluates BoxCount at every size returned by BoxSizes for the
// shorter side of the mask.
func Counts(m Mask) (sizes, counts []int) {
	side := m.W
	if m.H < side {
		side = m.H
	}
	sizes = BoxSizes(side)
	counts = make([]int, len(sizes))
	for i, eps := range sizes {
		counts[i] = BoxCount(m, eps)
	}
	return sizes, counts
}

// Fit regresses log(counts) on log(1/sizes) by ordinary least squares.
// A zero count yields ErrEmptyBox and a NaN dimension.
func Fit(sizes, counts []int) (Estimate, error) {
	est := Estimate{Sizes: sizes, Counts: counts, D: math.NaN(), Intercept: math.NaN(), R2: math.NaN()}
	if len(sizes) != len(counts) || len(sizes) < 2 {
		return est, ErrTooFewScales
	}
	xs := make([]float64, len(sizes))
	ys := make([]float64, len(counts))
	for i := range sizes {
		if counts[i] <= 0 {
			return est, ErrEmptyBox
		}
		xs[i] = math.Log(1 / float64(sizes[i]))
		ys[i] = math.Log(float64(counts[i]))
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	est.D = beta
	est.Intercept = alpha
	est.R2 = stat.RSquared(xs, ys, nil, alpha, beta)
	return est, nil
}

// Analyze counts boxes on m and fits the dimension.
func Analyze(m Mask) (Estimate, error) {
	sizes, counts := Counts(m)
	return Fit(sizes, counts)
}

// Dimension returns the box-counting dimension of m.
func Dimension(m Mask) (float64, error) {
	est, err := Analyze(m)
	return est.D, err
}
