package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	captionPad    = 4
	captionLineHt = 14
)

// Caption draws lines of text in the top-left corner of img on a translucent
// backing strip.
func Caption(img *image.RGBA, lines ...string) {
	if len(lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	width := 0
	for _, l := range lines {
		if adv := font.MeasureString(face, l).Ceil(); adv > width {
			width = adv
		}
	}
	strip := image.Rect(0, 0, width+2*captionPad, len(lines)*captionLineHt+2*captionPad)
	draw.Draw(img, strip.Intersect(img.Bounds()), image.NewUniform(color.RGBA{A: 160}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(captionPad, captionPad+(i+1)*captionLineHt-3)
		d.DrawString(l)
	}
}
