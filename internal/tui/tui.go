package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/session"
)

type Options struct {
	Client *api.Client
	Store  *session.Store

	// Theme forces the palette: "light", "dark" or "auto".
	Theme string
	// DebugLog appends event traces to the given file when non-empty.
	DebugLog string
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)

	m := newAppModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// The top-level unauthorized listener: the adapter reports, this owns
	// the redirect. The session clears first so the guard's next
	// evaluation bounces to login.
	opts.Client.OnUnauthorized(func() {
		opts.Store.MarkUnauthorized()
		p.Send(sessionExpiredMsg{})
	})

	_, err := p.Run()
	return err
}
