package components

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var tableBaseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

type Table struct {
	columns []string
	rows    [][]string
}

func NewTable(columns []string, rows [][]string) *Table {
	return &Table{
		columns: columns,
		rows:    rows,
	}
}

func (t *Table) Render() string {
	columns := make([]table.Column, len(t.columns))

	for i, title := range t.columns {
		width := len(title)

		for _, row := range t.rows {
			if i < len(row) && len(row[i]) > width {
				width = len(row[i])
			}
		}

		columns[i] = table.Column{Title: title, Width: width + 2}
	}

	rows := make([]table.Row, len(t.rows))

	for i, row := range t.rows {
		rows[i] = table.Row(row)
	}

	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	tableStyles.Selected = lipgloss.NewStyle()

	model := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithStyles(tableStyles),
	)

	return tableBaseStyle.Render(model.View()) + "\n"
}
