package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"nexafs/internal/scan"
)

// LoadingLine formats the progress line emitted for every measurement,
// matching the historical loader output verbatim.
func LoadingLine(molecule, edgeLabel, angle string) string {
	return fmt.Sprintf("Loading data for %s at the %s at %s degrees", molecule, edgeLabel, angle)
}

// SummaryTable renders the per-molecule totals of a scan result.
func SummaryTable(result *scan.Result) string {
	rows := make([][]string, 0, len(result.Molecules))
	for _, molecule := range result.Molecules {
		measurements := 0
		for _, edge := range molecule.Edges {
			measurements += len(edge.Measurements)
		}
		rows = append(rows, []string{
			molecule.Name,
			strconv.Itoa(len(molecule.Edges)),
			strconv.Itoa(measurements),
			strconv.Itoa(len(molecule.SkippedEdges)),
		})
	}
	return renderTable(
		[]string{"Molecule", "Edges", "Measurements", "Skipped"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	)
}

// MoleculeTable renders the edges and measurements of a single molecule.
func MoleculeTable(molecule scan.Molecule) string {
	var rows [][]string
	for _, edge := range molecule.Edges {
		for _, measurement := range edge.Measurements {
			angle := measurement.Angle
			if !measurement.Marked {
				angle += " (?)"
			}
			rows = append(rows, []string{edge.Label, angle, measurement.File})
		}
	}
	return renderTable(
		[]string{"Edge", "Angle", "File"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	// Keep header cells as given; the rounded style upper-cases them.
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// StatusLine formats a trailing status note, colorized when writer is a
// terminal. Warnings (skipped edges, unmarked files) render yellow.
func StatusLine(writer io.Writer, message string, warn bool) string {
	if !shouldColorize(writer) {
		return message
	}
	color := ansiGreen
	if warn {
		color = ansiYellow
	}
	return color + message + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
