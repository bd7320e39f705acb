package interactive

import "github.com/charmbracelet/lipgloss"

var (
	colorBlue  = lipgloss.Color("12")
	colorCyan  = lipgloss.Color("14")
	colorGreen = lipgloss.Color("10")
	colorRed   = lipgloss.Color("9")
	colorDim   = lipgloss.Color("8")
)

var (
	bannerStyle   = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	questionStyle = lipgloss.NewStyle().Bold(true)
	markStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	selectedStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	noticeStyle   = lipgloss.NewStyle().Foreground(colorRed)
	helpStyle     = lipgloss.NewStyle().Foreground(colorDim)
)
