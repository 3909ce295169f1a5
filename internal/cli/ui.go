package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// =============================================================================
// Palette
// =============================================================================

// Name and address colors follow the DOT export: names are drawn on
// whitesmoke, business addresses on lightblue.
var (
	colorAccent  = lipgloss.Color("36")
	colorSuccess = lipgloss.Color("35")
	colorWarning = lipgloss.Color("220")
	colorName    = lipgloss.Color("255")
	colorAddress = lipgloss.Color("117")
	colorMuted   = lipgloss.Color("245")
	colorBorder  = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleDim     = lipgloss.NewStyle().Foreground(colorBorder)
	styleName    = lipgloss.NewStyle().Foreground(colorName)
	styleAddress = lipgloss.NewStyle().Foreground(colorAddress)
	styleNumber  = lipgloss.NewStyle().Foreground(colorAccent).Align(lipgloss.Right)
	styleHeader  = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	styleCursor  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// =============================================================================
// Portfolio Tables
// =============================================================================

// portfolioTable renders rows of portfolio statistics. Column titleCol holds
// the portfolio name; every other column is numeric and right-aligned.
// highlight, when >= 0, marks one data row as selected.
func portfolioTable(headers []string, rows [][]string, titleCol, highlight int) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row == highlight:
				return styleCursor
			case col == titleCol:
				return styleName
			default:
				return styleNumber
			}
		}).
		Render()
}

// =============================================================================
// Status Output
// =============================================================================

// Status lines go to stderr so stdout stays machine-readable.

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓")+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleWarning.Render("! "+fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, lipgloss.NewStyle().Foreground(colorMuted).Render("›")+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written artifact.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render("→")+" "+styleAddress.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleName.Render(value))
}
