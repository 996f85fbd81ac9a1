package cli

import (
	"todo-cli/internal/format"
	"todo-cli/internal/mutate"
	"todo-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.jsonl>",
		Short: "Write every task to a JSONL file (one task per line)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return taskCmdRun(cmd, app, func(st *store.Store, _ *mutate.Controller) error {
				tasks := st.Tasks()
				if err := store.WriteTasksJSONL(args[0], tasks); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Envelope{Data: map[string]any{
					"path":  args[0],
					"tasks": len(tasks),
				}})
			})
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Add tasks from a JSONL file (see export)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := store.ReadTasksJSONL(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return taskCmdRun(cmd, app, func(st *store.Store, ctrl *mutate.Controller) error {
				n, err := st.Import(cmd.Context(), tasks, replace)
				if err != nil {
					return writeErr(cmd, err)
				}
				app.log().Info("tasks imported", "path", args[0], "imported", n, "replace", replace)
				v := ctrl.View()
				return writeOut(cmd, app, format.Envelope{
					Data: map[string]any{"imported": n, "skipped": len(tasks) - n},
					Meta: viewMeta(v),
				})
			})
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the current list instead of appending")
	return cmd
}
