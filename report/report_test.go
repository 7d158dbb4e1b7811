package report_test

import (
	"bytes"
	"image"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/epigrid/disease"
	"github.com/katalvlaran/epigrid/report"
	"github.com/stretchr/testify/require"
)

func sample() [][]disease.State {
	return [][]disease.State{
		{disease.Healthy, disease.Exposed, disease.Infected},
		{disease.Incubation, disease.Sick, disease.Recovered},
		{disease.Dead, disease.Healthy, disease.Healthy},
	}
}

func TestConsole_VerboseLines(t *testing.T) {
	var buf bytes.Buffer
	c := report.NewConsole(&buf, true)

	require.NoError(t, c.Header())
	require.NoError(t, c.Counts(disease.Counts{24, 0, 0, 0, 1, 0, 0}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "healthy\texposed\tinfected\tincubation\tsick\trecovered\tdead", lines[0])
	require.Equal(t, "24\t0\t0\t0\t1\t0\t0", lines[1])
}

func TestConsole_QuietSkipsGenerationLines(t *testing.T) {
	var buf bytes.Buffer
	c := report.NewConsole(&buf, false)

	require.NoError(t, c.Header())
	require.NoError(t, c.Counts(disease.Counts{}))
	require.Empty(t, buf.String())

	require.NoError(t, c.Summary(1, 7, 6.5))
	require.Equal(t, "last week deaths: 7\nscenario: 1 mean deaths: 6.5\n", buf.String())
}

func TestWritePopulation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WritePopulation(&buf, sample()))
	require.Equal(t, "0\t1\t2\n3\t4\t5\n6\t0\t0\n\n", buf.String())
}

func TestNamer(t *testing.T) {
	n, err := report.NewNamer("")
	require.NoError(t, err)

	name, err := n.Name(report.NameData{Week: 24, Deaths: 13, Scenario: 2})
	require.NoError(t, err)
	require.Equal(t, "gen-week24-deaths13-scenario2.png", name)

	n, err = report.NewNamer("run{{.Run}}/g{{.Generation}}.png")
	require.NoError(t, err)
	name, err = n.Name(report.NameData{Run: 3, Generation: 5})
	require.NoError(t, err)
	require.Equal(t, "run3_g5.png", name)

	_, err = report.NewNamer("{{.Week")
	require.Error(t, err)

	n, err = report.NewNamer("{{.Missing}}")
	require.NoError(t, err)
	_, err = n.Name(report.NameData{})
	require.Error(t, err)
}

func TestRender_TransposedPixels(t *testing.T) {
	img := report.Render(sample(), report.ImageOptions{Scale: 2})
	require.Equal(t, image.Rect(0, 0, 6, 6), img.Bounds())

	// cell (row=0, col=2) is Infected and lands at x=0, y=4.
	require.Equal(t, report.Palette[disease.Infected], img.RGBAAt(0, 4))
	require.Equal(t, report.Palette[disease.Infected], img.RGBAAt(1, 5))
	// cell (row=2, col=0) is Dead and lands at x=4, y=0.
	require.Equal(t, report.Palette[disease.Dead], img.RGBAAt(5, 1))
	require.Equal(t, report.Palette[disease.Sick], img.RGBAAt(2, 2))
}

func TestRender_Caption(t *testing.T) {
	caption := report.Caption(report.NameData{Week: 1, Deaths: 0, Scenario: 1})
	require.Equal(t, "week: 1 deaths: 0 scenario: 1", caption)

	img := report.Render(sample(), report.ImageOptions{Scale: 1, Caption: caption})
	b := img.Bounds()
	require.Greater(t, b.Dy(), 3)
	require.GreaterOrEqual(t, b.Dx(), len(caption)*7)

	dark := 0
	for y := 3; y < b.Max.Y; y++ {
		for x := 0; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).R == 0 {
				dark++
			}
		}
	}
	require.Positive(t, dark, "caption band should contain glyph pixels")
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.png")
	require.NoError(t, report.SavePNG(path, report.Render(sample(), report.ImageOptions{Scale: 4})))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, 12, cfg.Width)
	require.Equal(t, 12, cfg.Height)
}

func TestRenderCurves(t *testing.T) {
	history := []disease.Counts{
		{24, 0, 0, 0, 1, 0, 0},
		{20, 0, 0, 0, 4, 0, 1},
		{16, 2, 0, 0, 5, 0, 2},
	}
	var buf bytes.Buffer
	require.NoError(t, report.RenderCurves(&buf, history, report.ChartOptions{Title: "deaths"}))

	_, err := png.Decode(&buf)
	require.NoError(t, err)

	require.ErrorIs(t, report.RenderCurves(&buf, history[:1], report.ChartOptions{}), report.ErrTooFewPoints)
}

func TestAnimation(t *testing.T) {
	a := report.NewAnimation(10)
	require.ErrorIs(t, a.Encode(&bytes.Buffer{}), report.ErrNoFrames)

	a.Add(report.Render(sample(), report.ImageOptions{Scale: 2}))
	a.Add(report.Render(sample(), report.ImageOptions{Scale: 2}))
	require.Equal(t, 2, a.Len())

	var buf bytes.Buffer
	require.NoError(t, a.Encode(&buf))
	g, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, g.Image, 2)
	require.Equal(t, []int{10, 10}, g.Delay)

	// state colors are in the palette, so no dithering happens.
	r, gg, b, _ := g.Image[0].At(2, 2).RGBA()
	sick := report.Palette[disease.Sick]
	require.Equal(t, uint32(sick.R)*0x101, r)
	require.Equal(t, uint32(sick.G)*0x101, gg)
	require.Equal(t, uint32(sick.B)*0x101, b)
}
