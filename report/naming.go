package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/katalvlaran/epigrid/disease"
)

// DefaultNameTemplate names snapshot files after the week, the deaths so far
// and the scenario.
const DefaultNameTemplate = "gen-week{{.Week}}-deaths{{.Deaths}}-scenario{{.Scenario}}.png"

// NameData is the data a name template is executed with.
type NameData struct {
	Week       int // generation index + 1
	Generation int
	Deaths     int
	Scenario   disease.Scenario
	Run        int
}

// Namer renders snapshot file names from a text/template.
type Namer struct {
	tmpl *template.Template
}

// NewNamer parses pattern. An empty pattern selects DefaultNameTemplate.
func NewNamer(pattern string) (*Namer, error) {
	if pattern == "" {
		pattern = DefaultNameTemplate
	}
	tmpl, err := template.New("snapshot").Option("missingkey=error").Parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot name template: %w", err)
	}
	return &Namer{tmpl: tmpl}, nil
}

// Name renders the file name for d. Path separators in the result are
// replaced so a name never escapes the output directory.
func (n *Namer) Name(d NameData) (string, error) {
	var buf bytes.Buffer
	if err := n.tmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("rendering snapshot name: %w", err)
	}
	name := strings.ReplaceAll(buf.String(), "/", "_")
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	if name == "" {
		return "", fmt.Errorf("rendering snapshot name: empty result")
	}
	return name, nil
}

// Caption is the human-readable label drawn on a snapshot.
func Caption(d NameData) string {
	return fmt.Sprintf("week: %d deaths: %d scenario: %d", d.Week, d.Deaths, d.Scenario)
}
