// Package teaui is the interactive terminal timeline viewer.
package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/annals/pkg/app"
	"tableflip.dev/annals/pkg/logger"
)

// Run launches the viewer on s and blocks until the user quits. Edits made to
// the store by other processes are picked up while it runs.
func Run(ctx context.Context, s *app.Session, log *logger.Logger) error {
	if log == nil {
		log = logger.Discard()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, s)
	if changes, err := s.Watch(ctx); err != nil {
		log.Warn("live reload disabled", "error", err)
	} else {
		m.changes = changes
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
