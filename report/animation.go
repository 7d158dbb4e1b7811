package report

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

// ErrNoFrames is returned when an animation has nothing to encode.
var ErrNoFrames = errors.New("report: animation has no frames")

// gifPalette holds the state colors plus white and black for captions, so
// frames are quantised without dithering.
var gifPalette = func() color.Palette {
	p := make(color.Palette, 0, len(Palette)+2)
	for _, c := range Palette {
		p = append(p, c)
	}
	return append(p, color.White, color.Black)
}()

// Animation collects rendered snapshots and encodes them as a looping GIF.
type Animation struct {
	delay  int
	frames []*image.Paletted
}

// NewAnimation returns an empty animation; delay is in 100ths of a second.
func NewAnimation(delay int) *Animation {
	return &Animation{delay: max(delay, 1)}
}

// Add appends a frame.
func (a *Animation) Add(img image.Image) {
	b := img.Bounds()
	p := image.NewPaletted(b, gifPalette)
	draw.Draw(p, b, img, b.Min, draw.Src)
	a.frames = append(a.frames, p)
}

// Len returns the number of collected frames.
func (a *Animation) Len() int { return len(a.frames) }

// Encode writes the frames as a GIF to w.
func (a *Animation) Encode(w io.Writer) error {
	if len(a.frames) == 0 {
		return ErrNoFrames
	}
	out := &gif.GIF{}
	for _, f := range a.frames {
		out.Image = append(out.Image, f)
		out.Delay = append(out.Delay, a.delay)
	}
	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}
	return nil
}

// Save encodes the animation to path.
func (a *Animation) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return a.Encode(f)
}
