package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/gzhole/veritas/internal/analyzer"
	"github.com/gzhole/veritas/internal/catalog"
)

var (
	headerColor   = color.New(color.FgWhite, color.Bold)
	criticalColor = color.New(color.FgHiRed, color.Bold)
	highColor     = color.New(color.FgRed)
	mediumColor   = color.New(color.FgYellow)
	lowColor      = color.New(color.FgGreen)
	dimColor      = color.New(color.FgHiBlack)
	passColor     = color.New(color.FgGreen)
	failColor     = color.New(color.FgRed, color.Bold)
)

const (
	iconPass  = "\xe2\x9c\x85" // ✅
	iconFail  = "\xe2\x9d\x8c" // ❌
	iconBlock = "\xf0\x9f\x9b\x91"
	rule      = "═══════════════════════════════════════════════════════"
	thinRule  = "───────────────────────────────────────────────────────"
)

func severityColor(s catalog.Severity) *color.Color {
	switch s {
	case catalog.Critical:
		return criticalColor
	case catalog.High:
		return highColor
	case catalog.Medium:
		return mediumColor
	default:
		return lowColor
	}
}

func severityLabel(s catalog.Severity) string {
	return severityColor(s).Sprint(strings.ToUpper(s.String()))
}

func banner(w io.Writer, title string) {
	fmt.Fprintln(w, rule)
	headerColor.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetColumnSeparator("│")
	table.SetRowSeparator("─")
	table.SetHeaderLine(true)
	table.SetAutoWrapText(false)
	return table
}

// printEvidence renders evidence as a table, one row per match.
func printEvidence(w io.Writer, evidence []analyzer.Evidence) {
	table := newTable(w, []string{"Severity", "Category", "Match", "Confidence", "Description"})
	for _, e := range evidence {
		table.Append([]string{
			severityLabel(e.Severity),
			e.Category.String(),
			fmt.Sprintf("%q", e.Text),
			fmt.Sprintf("%.2f", e.Confidence),
			e.Description,
		})
	}
	table.Render()
}
