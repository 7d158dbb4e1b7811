package report

import (
	"image/color"

	"github.com/katalvlaran/epigrid/disease"
)

// Palette is the fixed color of each state, indexed by ordinal.
var Palette = [disease.NumStates]color.RGBA{
	disease.Healthy:    {R: 187, G: 255, B: 0, A: 255},  // light green
	disease.Exposed:    {R: 255, G: 227, B: 0, A: 255},  // yellow
	disease.Infected:   {R: 166, G: 0, B: 255, A: 255},  // purple
	disease.Incubation: {R: 255, G: 153, B: 0, A: 255},  // orange
	disease.Sick:       {R: 255, G: 17, B: 0, A: 255},   // red
	disease.Recovered:  {R: 56, G: 182, B: 255, A: 255}, // blue
	disease.Dead:       {R: 0, G: 0, B: 0, A: 255},      // black
}

// ColorOf returns the palette color of s; invalid states render white.
func ColorOf(s disease.State) color.RGBA {
	if !s.Valid() {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return Palette[s]
}
