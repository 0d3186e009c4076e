package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/artisanexperiences/carebook/internal/validation"
)

func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Primary)).
		Headers(headers...)

	for _, row := range rows {
		t.Row(row...)
	}

	return t.String()
}

// RenderErrors lists a failed validation one field per row, sorted by field.
func RenderErrors(result validation.Result) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorError)).
		Headers("FIELD", "ERROR").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(ColorError)
			}
			if col == 1 {
				return ErrorText
			}
			return lipgloss.Style{}
		})

	errs := result.Errors()
	for _, field := range result.Failed() {
		t.Row(field, errs[field])
	}

	return t.String()
}
