package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"todo-cli/internal/format"
	"todo-cli/internal/logging"
	"todo-cli/internal/model"
	"todo-cli/internal/mutate"
	"todo-cli/internal/store"
	"todo-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	Backend    string
	PrettyJSON bool
	Format     string

	cfg    *store.Config
	cfgErr error
	logger *slog.Logger
	logClo io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "Local-first task list (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo add Buy milk
  todo list --filter active
  todo toggle 3f2a
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app.cfg, app.cfgErr = store.LoadConfig()
		if app.cfg == nil {
			app.cfg = &store.Config{}
		}
		logger, closer, err := logging.New(
			envOr("TODO_LOG", app.cfg.Log.File),
			envOr("TODO_LOG_LEVEL", app.cfg.Log.Level),
		)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.logger, app.logClo = logger, closer
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logClo != nil {
			return app.logClo.Close()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TODO_DIR", ""), "Path to store dir (overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("TODO_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("TODO_BACKEND", ""), "Storage backend ("+strings.Join(store.Backends(), "|")+")")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TODO_FORMAT", "json"), "Output format (json|yaml|text)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newClearCompletedCmd(app))
	cmd.AddCommand(newCountCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))

	return cmd
}

func runTUI(ctx context.Context, app *App) error {
	st, kv, err := openStore(ctx, app)
	if err != nil {
		return err
	}
	defer kv.Close()
	return tui.Run(st, tui.Options{
		Logger:       app.log(),
		Title:        app.Workspace,
		Glyphs:       app.config().TUI.Glyphs,
		DisableMouse: app.config().TUI.DisableMouse,
	})
}

// storeDir resolves the storage dir:
// 1) --dir
// 2) --workspace
// 3) config workspace
// 4) default workspace
func storeDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	if app.cfgErr != nil {
		return "", app.cfgErr
	}
	if app.Workspace == "" {
		app.Workspace = store.DefaultWorkspace
		if ws := strings.TrimSpace(app.config().Workspace); ws != "" {
			app.Workspace = ws
		}
	}
	dir, err := store.WorkspaceDir(app.Workspace)
	if err != nil {
		return "", err
	}
	app.Dir = dir
	return dir, nil
}

func storeBackend(app *App) string {
	if b := strings.TrimSpace(app.Backend); b != "" {
		return strings.ToLower(b)
	}
	return strings.ToLower(strings.TrimSpace(app.config().Backend))
}

// openStore opens the configured backend and loads the task list. The caller closes the KV.
func openStore(ctx context.Context, app *App) (*store.Store, store.KV, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	backend := storeBackend(app)
	dir := ""
	if backend != store.BackendMemory {
		d, err := storeDir(app)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, nil, err
		}
		dir = d
	}
	kv, err := store.OpenKV(ctx, backend, dir)
	if err != nil {
		return nil, nil, err
	}
	st := store.New(kv)
	st.Load(ctx)
	app.log().Debug("store loaded", "backend", backend, "dir", dir, "tasks", st.Len())
	return st, kv, nil
}

func newController(app *App, st *store.Store) *mutate.Controller {
	return mutate.NewController(st, &model.Selector{}, mutate.WithLogger(app.log()))
}

func (app *App) config() *store.Config {
	if app.cfg == nil {
		return &store.Config{}
	}
	return app.cfg
}

func (app *App) log() *slog.Logger {
	if app.logger == nil {
		return logging.Discard()
	}
	return app.logger
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func viewMeta(v mutate.View) map[string]any {
	return map[string]any{"remaining": v.Remaining, "filter": v.Filter}
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
