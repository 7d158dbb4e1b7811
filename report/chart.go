package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/epigrid/disease"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrTooFewPoints is returned when a curve has fewer than two generations.
var ErrTooFewPoints = errors.New("report: at least two generations are needed for a chart")

// ChartOptions controls the state-curve chart.
type ChartOptions struct {
	Width, Height int
	Title         string
	// States selects the curves to draw; empty means every state.
	States []disease.State
}

// RenderCurves writes a PNG line chart with one curve per selected state.
// history[g] holds the counts after generation g; index 0 is the initial
// population.
func RenderCurves(w io.Writer, history []disease.Counts, opts ChartOptions) error {
	if len(history) < 2 {
		return ErrTooFewPoints
	}
	states := opts.States
	if len(states) == 0 {
		states = disease.States()
	}

	xs := make([]float64, len(history))
	for g := range history {
		xs[g] = float64(g)
	}

	series := make([]chart.Series, 0, len(states))
	for _, s := range states {
		ys := make([]float64, len(history))
		for g, c := range history {
			ys[g] = float64(c.Get(s))
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.String(),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: strokeOf(s), StrokeWidth: 2.0},
		})
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  max(opts.Width, 320),
		Height: max(opts.Height, 200),
		XAxis: chart.XAxis{
			Name:  "week",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "individuals",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// strokeOf maps a state to its palette color; Healthy is darkened so the
// curve stays visible on white.
func strokeOf(s disease.State) drawing.Color {
	c := ColorOf(s)
	if s == disease.Healthy {
		return drawing.Color{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 255}
	}
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
