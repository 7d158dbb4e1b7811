package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/katalvlaran/epigrid/disease"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	glyphWidth    = 7
	glyphHeight   = 13
	captionMargin = 2
)

// ImageOptions controls snapshot rendering.
type ImageOptions struct {
	// Scale is the side in pixels of one cell; values < 1 mean 1.
	Scale int
	// Caption, when non-empty, is drawn in a white band below the population.
	Caption string
}

// Render draws states as an image. Cell (row, col) is painted at pixel
// (x=row, y=col), so the picture is the transpose of the [row][col] layout.
func Render(states [][]disease.State, opts ImageOptions) *image.RGBA {
	scale := max(opts.Scale, 1)
	n := len(states)
	side := n * scale

	width, height := side, side
	if opts.Caption != "" {
		width = max(width, len(opts.Caption)*glyphWidth+2*captionMargin)
		height += glyphHeight + 2*captionMargin
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	for row := range states {
		for col, s := range states[row] {
			cell := image.Rect(row*scale, col*scale, (row+1)*scale, (col+1)*scale)
			draw.Draw(img, cell, &image.Uniform{C: ColorOf(s)}, image.Point{}, draw.Src)
		}
	}

	if opts.Caption != "" {
		addLabel(img, captionMargin, side+captionMargin+glyphHeight-2, opts.Caption, color.Black)
	}
	return img
}

// addLabel draws a text label onto an image with its baseline at (x, y).
func addLabel(img *image.RGBA, x, y int, label string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err = png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
