package report_test

import (
	"bytes"
	"strings"
	"testing"

	"nexafs/internal/report"
	"nexafs/internal/scan"
)

func TestLoadingLineMatchesLoaderFormat(t *testing.T) {
	got := report.LoadingLine("PTCDA", "C-K", "45")
	want := "Loading data for PTCDA at the C-K at 45 degrees"
	if got != want {
		t.Fatalf("LoadingLine = %q, want %q", got, want)
	}
}

func sampleResult() *scan.Result {
	return &scan.Result{
		Root: "/archive",
		Molecules: []scan.Molecule{
			{
				Name: "PTCDA",
				Edges: []scan.Edge{
					{
						Name:  "carbon",
						Label: "C-K",
						Measurements: []scan.Measurement{
							{File: "45deg_scan.txt", Angle: "45", Marked: true},
							{File: "misc.txt", Angle: "sc", Marked: false},
						},
					},
				},
				SkippedEdges: []string{"nitrogen"},
			},
		},
	}
}

func TestSummaryTable(t *testing.T) {
	rendered := report.SummaryTable(sampleResult())
	for _, want := range []string{"Molecule", "Edges", "Measurements", "Skipped", "PTCDA"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("summary table missing %q:\n%s", want, rendered)
		}
	}
	if strings.Contains(rendered, "MOLECULE") {
		t.Fatalf("header cells upper-cased by table style:\n%s", rendered)
	}
}

func TestMoleculeTableFlagsUnmarkedAngles(t *testing.T) {
	rendered := report.MoleculeTable(sampleResult().Molecules[0])
	if !strings.Contains(rendered, "C-K") || !strings.Contains(rendered, "45deg_scan.txt") {
		t.Fatalf("molecule table incomplete:\n%s", rendered)
	}
	if !strings.Contains(rendered, "sc (?)") {
		t.Fatalf("unmarked angle not flagged:\n%s", rendered)
	}
}

func TestStatusLinePlainForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	got := report.StatusLine(&buf, "3 edges skipped", true)
	if got != "3 edges skipped" {
		t.Fatalf("expected plain text for non-terminal writer, got %q", got)
	}
}
