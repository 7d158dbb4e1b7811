package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/epigrid/disease"
)

// Console writes tab-separated aggregate lines. When Verbose is false the
// per-generation methods are no-ops; summary lines are always written.
type Console struct {
	w       io.Writer
	verbose bool
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer, verbose bool) *Console {
	return &Console{w: w, verbose: verbose}
}

// Verbose reports whether per-generation lines are written.
func (c *Console) Verbose() bool { return c.verbose }

// Header writes the state names in ordinal order.
func (c *Console) Header() error {
	if !c.verbose {
		return nil
	}
	names := make([]string, 0, disease.NumStates)
	for _, s := range disease.States() {
		names = append(names, s.String())
	}
	_, err := fmt.Fprintln(c.w, strings.Join(names, "\t"))
	return err
}

// Counts writes one line of per-state counts in ordinal order.
func (c *Console) Counts(counts disease.Counts) error {
	if !c.verbose {
		return nil
	}
	cols := make([]string, 0, disease.NumStates)
	for _, n := range counts {
		cols = append(cols, strconv.Itoa(n))
	}
	_, err := fmt.Fprintln(c.w, strings.Join(cols, "\t"))
	return err
}

// Snapshot announces an exported snapshot.
func (c *Console) Snapshot(name string) error {
	_, err := fmt.Fprintln(c.w, name)
	return err
}

// Summary writes the deaths of the last run and the mean over all runs.
func (c *Console) Summary(scenario disease.Scenario, lastDeaths int, meanDeaths float64) error {
	if _, err := fmt.Fprintf(c.w, "last week deaths: %d\n", lastDeaths); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.w, "scenario: %d mean deaths: %g\n", scenario, meanDeaths)
	return err
}

// WritePopulation writes every cell's state ordinal, one tab-separated row per
// grid row, followed by a blank line.
func WritePopulation(w io.Writer, states [][]disease.State) error {
	for _, row := range states {
		cols := make([]string, len(row))
		for j, s := range row {
			cols[j] = strconv.Itoa(s.Ordinal())
		}
		if _, err := fmt.Fprintln(w, strings.Join(cols, "\t")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
