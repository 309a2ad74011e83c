package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/icza/mjpeg"
)

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return f.Close()
}

// Movie writes frames to an MJPEG AVI file.
type Movie struct {
	w, h   int
	writer mjpeg.AviWriter
	buf    bytes.Buffer
	opts   jpeg.Options
	frames int
}

// NewMovie creates an AVI of w×h frames at fps frames per second.
func NewMovie(path string, w, h, fps int) (*Movie, error) {
	if fps <= 0 {
		fps = 10
	}
	aw, err := mjpeg.New(path, int32(w), int32(h), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("render: create movie %s: %w", path, err)
	}
	return &Movie{w: w, h: h, writer: aw, opts: jpeg.Options{Quality: 75}}, nil
}

// AddFrame appends img. Frames must match the movie dimensions.
func (m *Movie) AddFrame(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != m.w || b.Dy() != m.h {
		return fmt.Errorf("render: frame is %dx%d, movie is %dx%d", b.Dx(), b.Dy(), m.w, m.h)
	}
	m.buf.Reset()
	if err := jpeg.Encode(&m.buf, img, &m.opts); err != nil {
		return fmt.Errorf("render: encode frame %d: %w", m.frames, err)
	}
	if err := m.writer.AddFrame(m.buf.Bytes()); err != nil {
		return fmt.Errorf("render: add frame %d: %w", m.frames, err)
	}
	m.frames++
	return nil
}

// Frames returns how many frames were written.
func (m *Movie) Frames() int { return m.frames }

// Close finalizes the AVI index.
func (m *Movie) Close() error {
	return m.writer.Close()
}
