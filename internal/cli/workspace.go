package cli

import (
	"os"
	"strings"

	"todo-cli/internal/format"
	"todo-cli/internal/store"

	"github.com/spf13/cobra"
)

func newWorkspaceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Workspace management (each workspace is a separate task list)",
	}

	cmd.AddCommand(newWorkspaceUseCmd(app))
	cmd.AddCommand(newWorkspaceCurrentCmd(app))
	cmd.AddCommand(newWorkspaceListCmd(app))

	return cmd
}

func newWorkspaceUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set current workspace (created if missing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := store.NormalizeWorkspaceName(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := store.WorkspaceDir(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return writeErr(cmd, err)
			}

			if app.cfgErr != nil {
				return writeErr(cmd, app.cfgErr)
			}
			cfg := app.config()
			cfg.Workspace = name
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}

			app.Workspace = name
			app.Dir = dir
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{
				"workspace": name,
				"dir":       dir,
			}})
		},
	}
}

func currentWorkspace(app *App) string {
	if ws := strings.TrimSpace(app.config().Workspace); ws != "" {
		return ws
	}
	return store.DefaultWorkspace
}

func newWorkspaceCurrentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show current workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfgErr != nil {
				return writeErr(cmd, app.cfgErr)
			}
			name := currentWorkspace(app)
			dir, err := store.WorkspaceDir(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{
				"workspace": name,
				"dir":       dir,
			}})
		},
	}
}

func newWorkspaceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfgErr != nil {
				return writeErr(cmd, app.cfgErr)
			}
			ws, err := store.ListWorkspaces()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{
				"workspaces":       ws,
				"currentWorkspace": currentWorkspace(app),
			}})
		},
	}
}
