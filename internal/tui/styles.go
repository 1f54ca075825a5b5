package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - workspace packages
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - failures
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNormal   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	styleError    = lipgloss.NewStyle().Foreground(colorRed)
	styleWarning  = lipgloss.NewStyle().Foreground(colorYellow)
)

// sourceStyles color package names by where their root came from.
var sourceStyles = map[string]lipgloss.Style{
	"System":    lipgloss.NewStyle().Foreground(colorGray),
	"Workspace": lipgloss.NewStyle().Foreground(colorGreen),
	"Other":     lipgloss.NewStyle().Foreground(colorWhite),
	"Source":    lipgloss.NewStyle().Foreground(colorGreen),
	"Added":     lipgloss.NewStyle().Foreground(colorCyan),
}
