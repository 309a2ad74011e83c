package charts

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"sir-ca/internal/fractal"
)

func TestTimeSeriesRendersPNG(t *testing.T) {
	s := []int{99, 95, 80, 60, 50, 48}
	i := []int{1, 4, 15, 25, 20, 10}
	r := []int{0, 1, 5, 15, 30, 42}
	var buf bytes.Buffer
	if err := TimeSeries(&buf, "demo", s, i, r); err != nil {
		t.Fatalf("TimeSeries: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatal("expected PNG output")
	}
}

func TestTimeSeriesRejectsShortSeries(t *testing.T) {
	var buf bytes.Buffer
	if err := TimeSeries(&buf, "", []int{1}, []int{1}, []int{0}); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

func TestDimensionPlotSkipsNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.png")
	betas := []float64{0.1, 0.2, 0.3, 0.4}
	means := []float64{math.NaN(), 1.2, 1.6, 1.8}
	stds := []float64{math.NaN(), 0.1, 0.05, 0.02}
	if err := DimensionPlot(path, betas, means, stds); err != nil {
		t.Fatalf("DimensionPlot: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("plot not written: %v", err)
	}

	if err := DimensionPlot(path, betas[:1], means[:1], stds[:1]); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for an all-NaN sweep, got %v", err)
	}
	if err := DimensionPlot(path, betas, means[:2], stds); err == nil {
		t.Fatal("expected an error for mismatched columns")
	}
}

func TestBoxCountPlot(t *testing.T) {
	m := fractal.NewMask(64, 64)
	for k := range m.Cells {
		m.Cells[k] = k%5 == 0
	}
	est, err := fractal.Analyze(m)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	path := filepath.Join(t.TempDir(), "boxes.png")
	if err := BoxCountPlot(path, est); err != nil {
		t.Fatalf("BoxCountPlot: %v", err)
	}
	if err := BoxCountPlot(path, fractal.Estimate{D: math.NaN()}); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
