// Package render turns lattice states into images and videos.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"sir-ca/internal/core"
	"sir-ca/internal/fractal"
)

// fillBinaryRGBA converts binary cell data into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []bool, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last colour.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range buf {
			buf[i] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// GridImage renders w×h cells through palette, magnified by scale using
// nearest-neighbour sampling.
func GridImage(cells []uint8, w, h int, palette []color.RGBA, scale int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	if len(cells) == w*h {
		fillPaletteRGBA(src.Pix, cells, palette)
	}
	return magnify(src, scale)
}

// SimImage renders the current cells of sim.
func SimImage(sim core.Sim, palette []color.RGBA, scale int) *image.RGBA {
	size := sim.Size()
	return GridImage(sim.Cells(), size.W, size.H, palette, scale)
}

// MaskImage renders a binary mask with the given on/off colours.
func MaskImage(m fractal.Mask, on, off color.Color, scale int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, m.W, m.H))
	if len(m.Cells) == m.W*m.H {
		fillBinaryRGBA(src.Pix, m.Cells, on, off)
	}
	return magnify(src, scale)
}

func magnify(src *image.RGBA, scale int) *image.RGBA {
	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
