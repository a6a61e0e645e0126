package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
)

// Run drives the back office in the terminal until the user quits or ctx
// is cancelled. It opens start first; the router redirects to login when
// there is no session. header is shown above every screen.
func Run(ctx context.Context, buf *surface.Buffer, nav router.Navigator, start router.Route, header string, opts ...tea.ProgramOption) error {
	model := NewModel(ctx, buf, nav, start)
	model.SetHeader(header)

	options := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(model, options...)

	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
