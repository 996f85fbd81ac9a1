package cli

import (
	"todo-cli/internal/format"
	"todo-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{"path": path}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfgErr != nil {
				return writeErr(cmd, app.cfgErr)
			}
			cfg := app.config()
			backend := storeBackend(app)
			if backend == "" {
				backend = store.BackendSQLite
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{
				"backend":   backend,
				"workspace": cfg.Workspace,
				"tui": map[string]any{
					"glyphs":        cfg.TUI.Glyphs,
					"disable_mouse": cfg.TUI.DisableMouse,
				},
				"log": map[string]any{
					"file":  cfg.Log.File,
					"level": cfg.Log.Level,
				},
			}})
		},
	})

	return cmd
}
