package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"sir-ca/internal/fractal"
	"sir-ca/internal/sims/sir"
)

func TestGridImageUsesPaletteAndScale(t *testing.T) {
	g := sir.Initialize(5)
	g.Set(0, 0, uint8(sir.Recovered))
	palette := sir.Palette()

	img := GridImage(g.Cells(), 5, 5, palette, 3)
	if b := img.Bounds(); b.Dx() != 15 || b.Dy() != 15 {
		t.Fatalf("expected 15x15 image, got %v", b)
	}
	cases := map[image.Point]color.RGBA{
		{X: 7, Y: 7}: palette[sir.Infected],
		{X: 1, Y: 2}: palette[sir.Recovered],
		{X: 14, Y: 0}: palette[sir.Susceptible],
	}
	for pt, want := range cases {
		if got := img.RGBAAt(pt.X, pt.Y); got != want {
			t.Fatalf("pixel %v is %+v, expected %+v", pt, got, want)
		}
	}
}

func TestSimImageMatchesGridImage(t *testing.T) {
	e := sir.New(8)
	a := SimImage(e, sir.Palette(), 1)
	b := GridImage(e.Cells(), 8, 8, sir.Palette(), 1)
	if string(a.Pix) != string(b.Pix) {
		t.Fatal("SimImage and GridImage disagree")
	}
}

func TestFillPaletteClampsAndClears(t *testing.T) {
	buf := make([]byte, 8)
	fillPaletteRGBA(buf, []uint8{0, 9}, []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}})
	if buf[5] != 2 {
		t.Fatalf("out-of-range value should use the last colour, got %v", buf[4:])
	}
	fillPaletteRGBA(buf, []uint8{0, 1}, nil)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("empty palette must clear the buffer, byte %d=%d", i, v)
		}
	}
}

func TestMaskImage(t *testing.T) {
	m := fractal.NewMask(2, 2)
	m.Cells[3] = true
	img := MaskImage(m, color.Black, color.White, 1)
	if got := img.RGBAAt(1, 1); got != (color.RGBA{A: 255}) {
		t.Fatalf("occupied cell should be black, got %+v", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("empty cell should be white, got %+v", got)
	}
}

func TestCaptionDrawsText(t *testing.T) {
	img := GridImage(make([]uint8, 100*100), 100, 100, []color.RGBA{{R: 255, G: 255, B: 255, A: 255}}, 1)
	Caption(img, "β = 0.25", "t = 12")
	changed := false
	for y := 0; y < 20 && !changed; y++ {
		for x := 0; x < 60; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Fatal("caption left the corner untouched")
	}
}

func TestSavePNGAndMovie(t *testing.T) {
	dir := t.TempDir()
	img := GridImage(sir.Initialize(10).Cells(), 10, 10, sir.Palette(), 2)

	pngPath := filepath.Join(dir, "grid.png")
	if err := SavePNG(pngPath, img); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	moviePath := filepath.Join(dir, "run.avi")
	mov, err := NewMovie(moviePath, 20, 20, 5)
	if err != nil {
		t.Fatalf("NewMovie: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := mov.AddFrame(img); err != nil {
			t.Fatalf("AddFrame: %v", err)
		}
	}
	if err := mov.AddFrame(image.NewRGBA(image.Rect(0, 0, 4, 4))); err == nil {
		t.Fatal("expected a size mismatch error")
	}
	if err := mov.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if mov.Frames() != 3 {
		t.Fatalf("expected 3 frames, got %d", mov.Frames())
	}

	for _, p := range []string{pngPath, moviePath} {
		info, err := os.Stat(p)
		if err != nil || info.Size() == 0 {
			t.Fatalf("%s missing or empty: %v", p, err)
		}
	}
}
