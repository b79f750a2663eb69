// Package themes holds the color schemes of the dashboard.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	ActiveTab     lipgloss.Style
	InactiveTab   lipgloss.Style
	StatusBar     lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	RoundedBox    lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

func newTheme(primary, secondary, fg, muted, border, success, warning, danger lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Secondary:  secondary,
		Foreground: fg,
		Muted:      muted,
		Border:     border,
		Success:    success,
		Warning:    warning,
		Error:      danger,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(primary).
			Padding(0, 2),
		InactiveTab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),
		StatusBar: lipgloss.NewStyle().
			Foreground(muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(border),
		StatusError: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1),
	}
}

// Default is the hospital palette.
var Default = newTheme(
	lipgloss.Color("#2180A8"),
	lipgloss.Color("#208084"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#999999"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#28A745"),
	lipgloss.Color("#FF9800"),
	lipgloss.Color("#DC3545"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(
	lipgloss.Color("#89b4fa"),
	lipgloss.Color("#94e2d5"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#f38ba8"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// ContainerIcons maps container colors to a marker shown next to waste types.
var ContainerIcons = map[string]string{
	"ROJO":     "🔴",
	"GUARDIAN": "🟡",
	"BLANCO":   "⚪",
	"NEGRO":    "⚫",
}

// GetContainerIcon returns the marker of a container color.
func GetContainerIcon(container string) string {
	if icon, ok := ContainerIcons[container]; ok {
		return icon
	}
	return "❔"
}
