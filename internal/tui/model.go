// Package tui implements the interactive six-tab waste dashboard.
package tui

import (
	"fmt"

	"github.com/Veraticus/segregate/internal/analysis"
	"github.com/Veraticus/segregate/internal/session"
	"github.com/Veraticus/segregate/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// chrome is the number of lines taken by the tab bar, filter line and status bar.
const chrome = 6

// Model holds the dashboard state.
type Model struct {
	theme     themes.Theme
	session   *session.Session
	analysis  *analysis.Analysis
	formatter *analysis.CLIFormatter
	picker    *filterPicker
	labels    map[string]string
	exportDir string
	status    string
	filter    session.Filter
	options   session.FilterOptions
	keymap    KeyMap
	help      help.Model
	content   viewport.Model
	height    int
	width     int
	tab       int
	showHelp  bool
	statusErr bool
	quitting  bool
}

// New creates a dashboard over a loaded session.
func New(sess *session.Session, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	labels := make(map[string]string, len(cfg.Rules.Containers))
	for _, c := range cfg.Rules.Containers {
		labels[c.WasteType] = themes.GetContainerIcon(c.Container)
	}

	m := Model{
		theme:     cfg.Theme,
		session:   sess,
		formatter: analysis.NewCLIFormatter().WithMarkdown(cfg.Markdown),
		labels:    labels,
		exportDir: cfg.ExportDir,
		filter:    cfg.Filter,
		options:   sess.Options(),
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		content:   viewport.New(cfg.Width, max(1, cfg.Height-chrome)),
		width:     cfg.Width,
		height:    cfg.Height,
		showHelp:  cfg.ShowHelp,
	}
	m.help.ShowAll = cfg.ShowHelp
	m.recompute()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.content.Width = msg.Width
		m.content.Height = max(1, msg.Height-chrome)
		m.help.Width = msg.Width
		m.refreshContent()
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s no exportado: %v", msg.kind, msg.err)
			m.statusErr = true
		} else {
			m.status = fmt.Sprintf("%s guardado en %s", msg.kind, msg.path)
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) && (m.picker == nil || msg.String() == "ctrl+c") {
			m.quitting = true
			return m, tea.Quit
		}
		if m.picker != nil {
			return m.updatePicker(msg)
		}
		return m.updateDashboard(msg)
	}

	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	views := analysis.Views()

	switch {
	case key.Matches(msg, m.keymap.NextTab):
		m.setTab((m.tab + 1) % len(views))
	case key.Matches(msg, m.keymap.PrevTab):
		m.setTab((m.tab + len(views) - 1) % len(views))
	case key.Matches(msg, m.keymap.JumpTab):
		m.setTab(int(msg.Runes[0] - '1'))
	case key.Matches(msg, m.keymap.AreaFilter):
		m.openPicker(pickAreas)
	case key.Matches(msg, m.keymap.WasteFilter):
		m.openPicker(pickWasteTypes)
	case key.Matches(msg, m.keymap.ResetFilter):
		m.filter = session.Filter{}
		m.recompute()
	case key.Matches(msg, m.keymap.ExportCSV):
		return m, m.exportCSV()
	case key.Matches(msg, m.keymap.ExportReport):
		return m, m.exportReport()
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	default:
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Close), key.Matches(msg, m.keymap.Quit):
		m.picker = nil
		return m, nil
	case key.Matches(msg, m.keymap.Toggle):
		value, ok := m.picker.current()
		if !ok {
			return m, nil
		}
		if m.picker.field == pickAreas {
			m.filter.Areas = session.Toggle(m.filter.Areas, value)
			m.picker.selected = m.filter.Areas
		} else {
			m.filter.WasteTypes = session.Toggle(m.filter.WasteTypes, value)
			m.picker.selected = m.filter.WasteTypes
		}
		m.picker.refreshRows()
		m.recompute()
		return m, nil
	case key.Matches(msg, m.keymap.ResetFilter):
		m.filter = session.Filter{}
		m.picker.selected = nil
		m.picker.refreshRows()
		m.recompute()
		return m, nil
	}

	picker, cmd := m.picker.Update(msg)
	m.picker = &picker
	return m, cmd
}

func (m *Model) setTab(i int) {
	if i < 0 || i >= len(analysis.Views()) || i == m.tab {
		return
	}
	m.tab = i
	m.refreshContent()
	m.content.GotoTop()
}

func (m *Model) openPicker(field pickerField) {
	processed := m.session.Processed()
	counts := make(map[string]int)
	options, selected := m.options.Areas, m.filter.Areas
	for i := range processed.Records {
		r := &processed.Records[i]
		if field == pickAreas {
			counts[r.Area]++
		} else {
			counts[r.WasteType]++
		}
	}

	var labels map[string]string
	if field == pickWasteTypes {
		options, selected = m.options.WasteTypes, m.filter.WasteTypes
		labels = m.labels
	}

	p := newFilterPicker(field, options, selected, counts, labels, m.theme, m.height-chrome)
	m.picker = &p
}

// recompute rebuilds the analysis for the current filter.
func (m *Model) recompute() {
	m.analysis = analysis.Analyze(m.session.View(m.filter))
	m.refreshContent()
}

func (m *Model) refreshContent() {
	f := m.formatter.WithWidth(m.width)
	m.content.SetContent(f.FormatView(m.currentView(), m.analysis))
}

func (m Model) currentView() analysis.View {
	return analysis.Views()[m.tab]
}

// Filter returns the active filter.
func (m Model) Filter() session.Filter {
	return m.filter
}

// Analysis returns the analysis of the filtered table.
func (m Model) Analysis() *analysis.Analysis {
	return m.analysis
}
