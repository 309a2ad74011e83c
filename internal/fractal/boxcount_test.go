package fractal

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func fullMask(w, h int) Mask {
	m := NewMask(w, h)
	for i := range m.Cells {
		m.Cells[i] = true
	}
	return m
}

func TestBoxSizesDoublingUpToHalfSide(t *testing.T) {
	cases := map[int][]int{
		200: {1, 2, 4, 8, 16, 32, 64},
		256: {1, 2, 4, 8, 16, 32, 64, 128},
		10:  {1, 2, 4},
		3:   {1},
		1:   nil,
	}
	for side, want := range cases {
		if got := BoxSizes(side); !slices.Equal(got, want) {
			t.Fatalf("BoxSizes(%d)=%v, expected %v", side, got, want)
		}
	}
}

func TestBoxCountUnitBoxesEqualOccupied(t *testing.T) {
	m := NewMask(16, 16)
	for _, idx := range []int{0, 17, 34, 100, 255, 128} {
		m.Cells[idx] = true
	}
	if got := BoxCount(m, 1); got != m.Occupied() {
		t.Fatalf("BoxCount(ε=1)=%d, expected occupied=%d", got, m.Occupied())
	}
}

func TestBoxCountNonIncreasing(t *testing.T) {
	m := NewMask(40, 40)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if (x*x+3*y)%7 == 0 {
				m.Cells[y*40+x] = true
			}
		}
	}
	sizes, counts := Counts(m)
	if len(sizes) == 0 {
		t.Fatal("expected box sizes for a 40x40 mask")
	}
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[i-1] {
			t.Fatalf("count rose from %d to %d between ε=%d and ε=%d", counts[i-1], counts[i], sizes[i-1], sizes[i])
		}
	}
}

func TestBoxCountPartialEdgeBoxes(t *testing.T) {
	m := NewMask(5, 5)
	m.Cells[4*5+4] = true
	// With ε=4 the bottom-right box covers only the single corner cell.
	if got := BoxCount(m, 4); got != 1 {
		t.Fatalf("expected the edge box to be counted once, got %d", got)
	}
	full := fullMask(5, 5)
	if got := BoxCount(full, 2); got != 9 {
		t.Fatalf("expected 3x3 boxes on a 5x5 grid, got %d", got)
	}
}

func TestFullGridDimensionIsTwo(t *testing.T) {
	d, err := Dimension(fullMask(256, 256))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d-2) > 0.05 {
		t.Fatalf("expected D≈2 for a full grid, got %.4f", d)
	}
}

func TestLineDimensionIsOne(t *testing.T) {
	m := NewMask(256, 256)
	for x := 0; x < 256; x++ {
		m.Cells[100*256+x] = true
	}
	est, err := Analyze(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(est.D-1) > 1e-9 {
		t.Fatalf("expected D=1 for a straight line, got %.6f", est.D)
	}
	if math.Abs(est.R2-1) > 1e-9 {
		t.Fatalf("expected a perfect fit, got R²=%.6f", est.R2)
	}
}

func TestSingleCellDimensionIsZero(t *testing.T) {
	m := NewMask(64, 64)
	m.Cells[32*64+32] = true
	d, err := Dimension(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d) > 1e-12 {
		t.Fatalf("expected D=0 for a point, got %v", d)
	}
}

func TestDimensionIsPure(t *testing.T) {
	m := NewMask(50, 50)
	for i := range m.Cells {
		m.Cells[i] = i%3 == 0 || i%11 == 0
	}
	before := slices.Clone(m.Cells)
	a, errA := Dimension(m)
	b, errB := Dimension(m)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v %v", errA, errB)
	}
	if a != b {
		t.Fatalf("repeated calls disagree: %v vs %v", a, b)
	}
	if !slices.Equal(before, m.Cells) {
		t.Fatal("Dimension mutated its input")
	}
}

func TestEmptyMaskReportsEmptyBox(t *testing.T) {
	d, err := Dimension(NewMask(32, 32))
	if !errors.Is(err, ErrEmptyBox) {
		t.Fatalf("expected ErrEmptyBox, got %v", err)
	}
	if !math.IsNaN(d) {
		t.Fatalf("expected NaN dimension, got %v", d)
	}
}

func TestTooFewScales(t *testing.T) {
	m := fullMask(3, 3)
	if _, err := Dimension(m); !errors.Is(err, ErrTooFewScales) {
		t.Fatalf("expected ErrTooFewScales for a 3x3 mask, got %v", err)
	}
	if _, err := Fit([]int{1, 2}, []int{4}); !errors.Is(err, ErrTooFewScales) {
		t.Fatalf("expected ErrTooFewScales for mismatched input, got %v", err)
	}
}
