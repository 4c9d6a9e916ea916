// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// renderTable writes rows under headers with a rounded border.
func renderTable(out io.Writer, headers []string, rows [][]string) {
	grid := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(out, grid.Render())
}

// renderField writes one "Label: value" line, skipping empty values.
func renderField(out io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render(label+":"), value)
}

func renderNote(out io.Writer, format string, args ...any) {
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf(format, args...)))
}
