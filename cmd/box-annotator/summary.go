package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/menta2k/box-annotator/pkg/loader"
	"github.com/menta2k/box-annotator/pkg/types"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// renderSummary formats the result of a replay for the terminal
func renderSummary(info loader.ImageInfo, surfaceW, surfaceH int, boxes []types.Box, written []string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("image %dx%d on surface %dx%d: %d box(es)",
		info.Width, info.Height, surfaceW, surfaceH, len(boxes))))
	b.WriteString("\n")

	if len(boxes) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "label", "x", "y", "width", "height").
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for i, bx := range boxes {
			t.Row(
				fmt.Sprint(i+1),
				bx.Label,
				fmt.Sprintf("%.1f", bx.X),
				fmt.Sprintf("%.1f", bx.Y),
				fmt.Sprintf("%.1f", bx.Width),
				fmt.Sprintf("%.1f", bx.Height),
			)
		}
		b.WriteString(t.String())
		b.WriteString("\n")
	}

	for _, w := range written {
		b.WriteString(dimStyle.Render("wrote " + w))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
