package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-amp/amp"
)

// ParamsCmd prints the parameter table.
type ParamsCmd struct {
	ToneFlags `embed:""`
}

func (c *ParamsCmd) Run(log *logrus.Logger) error {
	params := c.parameters(log)
	st := newStyles(isTerminal(os.Stdout))

	_, err := io.WriteString(os.Stdout, paramTable(st, params.Snapshot()))

	return err
}

// paramTable renders one row per parameter with its range, default and the
// value in s.
func paramTable(st styles, s amp.Snapshot) string {
	header := []string{"ID", "NAME", "RANGE", "DEFAULT", "VALUE"}
	rows := [][]string{header}

	for _, spec := range amp.ParameterSpecs() {
		rows = append(rows, []string{
			spec.ID,
			spec.Name,
			fmt.Sprintf("%+.0f..%+.0f %s", spec.Min, spec.Max, spec.Unit),
			spec.Format(spec.Default),
			spec.Format(s.Value(spec.ID)),
		})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var sb strings.Builder

	for r, row := range rows {
		for i, cell := range row {
			style := st.value
			switch {
			case r == 0:
				style = st.section
			case i == 0:
				style = st.flag
			case i == 2 || i == 3:
				style = st.muted
			}

			sb.WriteString(style.Width(widths[i] + 2).Render(cell))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
