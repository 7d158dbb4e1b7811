package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epigrid/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "epigrid version "+version+"\n", out)

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	require.JSONEq(t, `{"version":"`+version+`"}`, out)
}

func TestScenariosCmd(t *testing.T) {
	out, err := execute(t, "scenarios")
	require.NoError(t, err)
	require.Contains(t, out, "lower containment")
	require.Contains(t, out, "higher containment")

	out, err = execute(t, "scenarios", "--json")
	require.NoError(t, err)
	var infos []scenarioInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 2)
	require.Equal(t, 0.5, infos[0].Contagion)
	require.Len(t, infos[0].Transitions, 7)
}

func TestRunCmd_Summary(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run",
		"--size", "11", "--scenario", "1", "--generations", "5", "--runs", "2", "--seed", "3",
		"--out", dir, "--weeks", "1,5", "--caption", "--chart")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	require.True(t, strings.HasPrefix(lines[len(lines)-2], "last week deaths: "))
	require.True(t, strings.HasPrefix(lines[len(lines)-1], "scenario: 1 mean deaths: "))
	require.True(t, strings.HasPrefix(lines[0], "gen-week1-deaths"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3) // two snapshots and the chart
}

func TestRunCmd_VerboseAndStore(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")

	out, err := execute(t, "run",
		"--size", "5", "--scenario", "2", "--generations", "3", "--runs", "1", "--seed", "1",
		"--no-snapshots", "--verbose", "--store", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 1+4+2)
	require.Equal(t, "24\t0\t0\t0\t1\t0\t0", lines[1])

	out, err = execute(t, "runs", "--store", db, "--json")
	require.NoError(t, err)
	var runs []struct {
		ID     string
		Size   int
		Deaths int
	}
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	require.Equal(t, 5, runs[0].Size)

	out, err = execute(t, "runs", "counts", runs[0].ID, "--store", db)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n"), 1+4)
}

func TestRunsCmd_MissingStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "absent.db")

	out, err := execute(t, "runs", "--store", db)
	require.NoError(t, err)
	require.Equal(t, "No runs recorded.\n", out)

	out, err = execute(t, "runs", "--store", db, "--json")
	require.NoError(t, err)
	require.JSONEq(t, `[]`, out)

	_, err = execute(t, "runs", "counts", "some-run", "--store", db)
	require.ErrorIs(t, err, store.ErrRunNotFound)

	_, err = os.Stat(db)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCmd_InvalidConfig(t *testing.T) {
	_, err := execute(t, "run", "--size", "0", "--no-snapshots")
	require.ErrorContains(t, err, "Simulation.Size")

	_, err = execute(t, "run", "--scenario", "42", "--no-snapshots")
	require.ErrorContains(t, err, "invalid scenario")

	_, err = execute(t, "run", "--social-distance", "2", "--no-snapshots")
	require.Error(t, err)
}

func TestRunCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "epigrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation:
  size: 7
  scenario: 5
  generations: 2
  runs: 1
  seed: 9
output:
  snapshots: false
scenarios:
  - id: 5
    name: frozen
    contagion: 0
    transitions:
      - [1, 0, 0, 0, 0, 0, 0]
      - [0, 1, 0, 0, 0, 0, 0]
      - [0, 0, 1, 0, 0, 0, 0]
      - [0, 0, 0, 1, 0, 0, 0]
      - [0, 0, 0, 0, 1, 0, 0]
      - [0, 0, 0, 0, 0, 1, 0]
      - [0, 0, 0, 0, 0, 0, 1]
`), 0o644))

	out, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	require.Equal(t, "last week deaths: 0\nscenario: 5 mean deaths: 0\n", out)

	out, err = execute(t, "scenarios", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "frozen")
}
