package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/transitcat/pkg/catalogue"
	"github.com/matzehuels/transitcat/pkg/routing"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - waits
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleWait        = lipgloss.NewStyle().Foreground(colorYellow)
	styleRide        = lipgloss.NewStyle().Foreground(colorGreen)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Domain Output
// =============================================================================

// printBusStats prints the statistics of one bus.
func printBusStats(w io.Writer, name string, s catalogue.RouteStats) {
	fmt.Fprintln(w, StyleTitle.Render("Bus "+name))
	printKeyValue(w, "stops", strconv.Itoa(s.StopCount))
	printKeyValue(w, "unique", strconv.Itoa(s.UniqueStopCount))
	printKeyValue(w, "length", fmt.Sprintf("%.0f m", s.RouteLength))
	printKeyValue(w, "curvature", strconv.FormatFloat(s.Curvature, 'f', 4, 64))
}

// printStopBuses prints the buses serving a stop.
func printStopBuses(w io.Writer, name string, buses []string) {
	fmt.Fprintln(w, StyleTitle.Render("Stop "+name))
	if len(buses) == 0 {
		fmt.Fprintln(w, "  "+StyleDim.Render("no buses"))
		return
	}
	for _, b := range buses {
		fmt.Fprintln(w, "  "+StyleValue.Render(b))
	}
}

// routeTable renders a route as a bordered table, one row per action.
func routeTable(route routing.Route) string {
	rows := make([][]string, 0, len(route.Actions)+1)
	for _, a := range route.Actions {
		switch a.Kind {
		case routing.Wait:
			rows = append(rows, []string{"Wait", a.StopName, "", formatMinutes(a.Time)})
		case routing.Bus:
			rows = append(rows, []string{"Bus", a.BusName, strconv.Itoa(a.SpanCount), formatMinutes(a.Time)})
		}
	}
	rows = append(rows, []string{"", "total", "", formatMinutes(route.TotalTime)})

	last := len(rows) - 1
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Action", "Stop / Bus", "Spans", "Minutes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case row == last:
				return base.Bold(true)
			case col == 0 && rows[row][0] == "Wait":
				return base.Inherit(styleWait)
			case col == 0:
				return base.Inherit(styleRide)
			}
			return base
		}).
		Render()
}

func formatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', 2, 64)
}
