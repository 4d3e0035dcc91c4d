package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mindmend/internal/mood"
)

type Theme struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Border   lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Selected lipgloss.Style
	Marker   lipgloss.Style
}

var DefaultTheme = Theme{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89DCEB")),
	Label:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1),
	Hint:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Selected: lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("#313244")),
	Marker:   lipgloss.NewStyle().Foreground(lipgloss.Color("#94E2D5")),
}

// moodStyles 根据滑块数值取渐变端点颜色，同一数值永远得到同一对样式。
func moodStyles(value int) (lipgloss.Style, lipgloss.Style) {
	c1, c2 := mood.Gradient(value)
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c1.Hex())),
		lipgloss.NewStyle().Foreground(lipgloss.Color(c2.Hex()))
}
