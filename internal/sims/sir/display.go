package sir

import "image/color"

var sirPalette = []color.RGBA{
	Susceptible: {R: 255, G: 255, B: 255, A: 255},
	Infected:    {R: 220, G: 30, B: 30, A: 255},
	Recovered:   {R: 40, G: 150, B: 60, A: 255},
}

// Palette returns the display colours indexed by State.
func Palette() []color.RGBA {
	out := make([]color.RGBA, len(sirPalette))
	copy(out, sirPalette)
	return out
}

// Palette exposes the colour palette used for rendering the epidemic.
func (e *Epidemic) Palette() []color.RGBA { return Palette() }
