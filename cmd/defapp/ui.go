package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"defapp/pkg/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderAssociations draws the association list as a bordered table.
func renderAssociations(list []types.FileAssociation) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("EXTENSION", "APPLICATION", "PATH")

	for _, a := range list {
		t.Row(a.Extension, a.ApplicationName, a.ApplicationPath)
	}
	return t.Render()
}
