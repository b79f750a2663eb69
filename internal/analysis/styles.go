package analysis

import (
	"strings"

	"github.com/Veraticus/segregate/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all styling definitions for view rendering.
type Styles struct {
	// Base styles from CLI package
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style

	// View-specific styles
	Box         lipgloss.Style
	MetricValue lipgloss.Style
	MetricLabel lipgloss.Style
	TableHeader lipgloss.Style
	Bar         lipgloss.Style
	Current     lipgloss.Style
	Target      lipgloss.Style
	AlertBox    lipgloss.Style
	NoticeBox   lipgloss.Style
	ProposalBox lipgloss.Style
}

// NewStyles creates a new Styles instance with default styling.
func NewStyles() *Styles {
	s := &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Success:  cli.SuccessStyle,
		Warning:  cli.WarningStyle,
		Error:    cli.ErrorStyle,
		Info:     cli.InfoStyle,
		Subtle:   cli.SubtleStyle,
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SubtleColor).
		Padding(0, 1)

	s.MetricValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor)

	s.MetricLabel = lipgloss.NewStyle().
		Foreground(cli.SubtleColor)

	s.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor)

	s.Bar = lipgloss.NewStyle().
		Foreground(cli.InfoColor)

	s.Current = lipgloss.NewStyle().
		Foreground(cli.AccentColor)

	s.Target = lipgloss.NewStyle().
		Foreground(cli.InfoColor)

	// Alert boxes mirror the danger / warning / success callouts.
	s.AlertBox = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(cli.ErrorColor).
		PaddingLeft(1).
		MarginTop(1)

	s.NoticeBox = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(cli.WarningColor).
		PaddingLeft(1).
		MarginTop(1)

	s.ProposalBox = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(cli.SuccessColor).
		PaddingLeft(1).
		MarginTop(1)

	return s
}

// WithWidth returns a new Styles instance adjusted for the given terminal width.
func (s *Styles) WithWidth(width int) *Styles {
	newStyles := *s

	if width > 0 && width < 100 {
		newStyles.Box = s.Box.Width(width - 4)
		newStyles.AlertBox = s.AlertBox.Width(width - 2)
		newStyles.NoticeBox = s.NoticeBox.Width(width - 2)
		newStyles.ProposalBox = s.ProposalBox.Width(width - 2)
	}

	return &newStyles
}

// ForIncidentPct returns the style for an incident percentage.
func (s *Styles) ForIncidentPct(pct float64) lipgloss.Style {
	switch {
	case pct >= 20:
		return s.Error
	case pct >= 10:
		return s.Warning
	default:
		return s.Success
	}
}

// RenderBar returns a bar of width cells filled in proportion to value/maxValue.
func (s *Styles) RenderBar(value, maxValue, width int) string {
	if width <= 0 {
		width = 30
	}
	if maxValue <= 0 {
		return strings.Repeat("░", width)
	}

	filled := width * value / maxValue
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	// Raw characters keep the width exact; callers style the whole bar.
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderBox renders content in a styled box with optional title.
func (s *Styles) RenderBox(content string, title string, style lipgloss.Style) string {
	if title != "" {
		titleStyled := s.Info.Bold(true).Render(" " + title + " ")
		return style.Render(titleStyled + "\n" + content)
	}
	return style.Render(content)
}
