package tui

import (
	"github.com/Veraticus/segregate/internal/analysis"
	"github.com/Veraticus/segregate/internal/classification"
	"github.com/Veraticus/segregate/internal/session"
	"github.com/Veraticus/segregate/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Markdown  *analysis.MarkdownRenderer
	Filter    session.Filter
	Rules     classification.RuleSet
	ExportDir string
	Width     int
	Height    int
	ShowHelp  bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Rules:     classification.DefaultRuleSet(),
		ExportDir: ".",
		Width:     100,
		Height:    30,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithFilter sets the filter the dashboard opens with.
func WithFilter(f session.Filter) Option {
	return func(c *Config) {
		c.Filter = f
	}
}

// WithRules sets the rules used to label waste types with their container.
func WithRules(rules classification.RuleSet) Option {
	return func(c *Config) {
		c.Rules = rules
	}
}

// WithMarkdown sets the renderer for markdown panels.
func WithMarkdown(r *analysis.MarkdownRenderer) Option {
	return func(c *Config) {
		c.Markdown = r
	}
}

// WithExportDir sets the directory exports from the dashboard are written to.
func WithExportDir(dir string) Option {
	return func(c *Config) {
		c.ExportDir = dir
	}
}
