package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	retree "github.com/domonda/go-retree"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
	cursorStyle   = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("237"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("244"))
	activeTab     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// visibleRows returns the rows of t that are not hidden.
func visibleRows(t *retree.Table[string]) []*retree.Row[string] {
	var rows []*retree.Row[string]
	for _, row := range t.Rows() {
		if !row.Hidden() {
			rows = append(rows, row)
		}
	}
	return rows
}

// renderTable renders the visible rows of t with a border.
// The cell at selRow and selCol of the visible rows is highlighted,
// a negative selRow highlights nothing.
func renderTable(t *retree.Table[string], selRow, selCol int) (string, error) {
	rows, err := retree.Strings(t, nil, retree.OptionSkipHidden)
	if err != nil {
		return "", err
	}
	lt := table.New().
		Border(lipgloss.RoundedBorder()).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == selRow && col == selCol:
				return selectedStyle
			case row == selRow:
				return cursorStyle
			}
			return cellStyle
		})
	if t.Title() != nil {
		lt = lt.Headers(t.Title().Labels()...)
	}
	return lt.String(), nil
}
