package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/chazu/trayforge/pkg/tray"
	"github.com/chazu/trayforge/pkg/units"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
)

// formatLength prints a millimeter length in unit.
func formatLength(mm float64, unit units.Length) string {
	if unit == units.Inches {
		return fmt.Sprintf("%.2f in", units.MMToInches(mm))
	}
	return fmt.Sprintf("%.1f mm", mm)
}

// formatCapacity prints a volume in milliliters and US cups.
func formatCapacity(ml float64) string {
	return fmt.Sprintf("%.1f mL / %.2f cups", ml, units.MLToCups(ml))
}

// renderSummary draws the capacity grid the way the tray sits on a desk:
// the first row (smallest Y) at the bottom. Column headers carry the bin
// widths, the first column the row heights.
func renderSummary(p tray.Params, rep tray.Report, unit units.Length) string {
	headers := make([]string, 0, len(p.Widths)+1)
	headers = append(headers, "")
	for _, w := range p.Widths {
		headers = append(headers, formatLength(w, unit))
	}

	rows := make([][]string, 0, len(p.Heights))
	for r := len(p.Heights) - 1; r >= 0; r-- {
		row := make([]string, 0, len(p.Widths)+1)
		row = append(row, formatLength(p.Heights[r], unit))
		for c := range p.Widths {
			row = append(row, formatCapacity(rep.Volume(c, r)))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return styleHeader
			}
			return styleCell
		})

	var b strings.Builder
	fmt.Fprintln(&b, styleTitle.Render("Bin capacities"))
	fmt.Fprintln(&b, t.String())
	fmt.Fprintf(&b, "Total width  (with walls): %8.2f mm / %6.2f in\n", rep.Width, units.MMToInches(rep.Width))
	fmt.Fprintf(&b, "Total height (with walls): %8.2f mm / %6.2f in\n", rep.Height, units.MMToInches(rep.Height))
	fmt.Fprintf(&b, "Total depth  (with floor): %8.2f mm / %6.2f in\n", rep.Depth, units.MMToInches(rep.Depth))
	fmt.Fprintf(&b, "Total capacity:            %s\n", formatCapacity(rep.Total()))
	return b.String()
}
