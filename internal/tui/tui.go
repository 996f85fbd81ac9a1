package tui

import (
	"todo-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive app on st and blocks until the user quits.
func Run(st *store.Store, opts Options) error {
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(st, opts)
	m.logger.Info("tui start", "key", st.Key(), "tasks", st.Len())

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if !opts.DisableMouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(m, progOpts...).Run()
	return err
}
