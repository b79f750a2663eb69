package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, sess *session.Session, opts ...Option) error {
	if sess == nil {
		return common.NewUserError("Load a waste log before opening the dashboard", common.ErrNoSession)
	}

	program := tea.NewProgram(New(sess, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
