// Package report renders synthesized plans for the terminal.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	okStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))
)

func Header(text string) string {
	return headerStyle.Render(text)
}

func Field(label string, format string, args ...any) string {
	return labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf(format, args...))
}

func Warn(text string) string {
	return warnStyle.Render(text)
}

func OK(text string) string {
	return okStyle.Render(text)
}

// InputTable formats the input sequence as a step-by-step table.
func InputTable(inputs [][]float64) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	header := "STEP"
	if len(inputs) > 0 {
		for i := range inputs[0] {
			header += fmt.Sprintf("\tU%d", i)
		}
	}
	fmt.Fprintln(w, header)

	for k, row := range inputs {
		line := fmt.Sprintf("%d", k)
		for _, v := range row {
			line += fmt.Sprintf("\t%.6f", v)
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
	return b.String()
}

// TrajectoryPlots renders one asciigraph per state variable, capped at
// maxVars plots.
func TrajectoryPlots(states [][]float64, maxVars int) string {
	if len(states) == 0 {
		return ""
	}

	numVars := len(states[0])
	if numVars > maxVars {
		numVars = maxVars
	}

	var b strings.Builder
	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("x%d vs step", varIdx)),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}
	return b.String()
}
