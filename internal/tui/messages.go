package tui

// exportedMsg reports the outcome of an export started from the dashboard.
type exportedMsg struct {
	err  error
	kind string
	path string
}
