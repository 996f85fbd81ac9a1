package cli

import (
	"strings"

	"todo-cli/internal/format"
	"todo-cli/internal/model"
	"todo-cli/internal/mutate"
	"todo-cli/internal/store"

	"github.com/spf13/cobra"
)

// taskCmdRun opens the store, runs fn against a fresh controller and closes the store.
func taskCmdRun(cmd *cobra.Command, app *App, fn func(st *store.Store, ctrl *mutate.Controller) error) error {
	st, kv, err := openStore(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer kv.Close()
	return fn(st, newController(app, st))
}

// dispatchAndWrite applies c and writes data (computed from the result) in the standard envelope.
func dispatchAndWrite(cmd *cobra.Command, app *App, ctrl *mutate.Controller, c mutate.Command, data func(mutate.Result) any) error {
	res, err := ctrl.Dispatch(cmd.Context(), c)
	if err != nil {
		return writeErr(cmd, err)
	}
	v := ctrl.View()
	return writeOut(cmd, app, format.Envelope{Data: data(res), Meta: viewMeta(v)})
}

func resultTask(res mutate.Result) any {
	if res.Task == nil {
		return nil
	}
	return res.Task
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task (blank text is ignored)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return taskCmdRun(cmd, app, func(_ *store.Store, ctrl *mutate.Controller) error {
				return dispatchAndWrite(cmd, app, ctrl, mutate.Add(strings.Join(args, " ")), resultTask)
			})
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			return taskCmdRun(cmd, app, func(_ *store.Store, ctrl *mutate.Controller) error {
				return dispatchAndWrite(cmd, app, ctrl, mutate.SetFilter(f), func(mutate.Result) any {
					return ctrl.View().Tasks
				})
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "Which tasks to show (all|active|completed)")
	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task completed (or active again)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return taskCmdRun(cmd, app, func(st *store.Store, ctrl *mutate.Controller) error {
				id, err := st.Resolve(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				return dispatchAndWrite(cmd, app, ctrl, mutate.Toggle(id), resultTask)
			})
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return taskCmdRun(cmd, app, func(st *store.Store, ctrl *mutate.Controller) error {
				id, err := st.Resolve(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				removed, found := st.Find(id)
				return dispatchAndWrite(cmd, app, ctrl, mutate.Remove(id), func(mutate.Result) any {
					if !found {
						return nil
					}
					return removed
				})
			})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace a task's text (empty text removes the task)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return taskCmdRun(cmd, app, func(st *store.Store, ctrl *mutate.Controller) error {
				id, err := st.Resolve(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				text := strings.Join(args[1:], " ")
				return dispatchAndWrite(cmd, app, ctrl, mutate.Edit(id, text), resultTask)
			})
		},
	}
}

func newClearCompletedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Remove every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return taskCmdRun(cmd, app, func(st *store.Store, ctrl *mutate.Controller) error {
				before := st.Len()
				return dispatchAndWrite(cmd, app, ctrl, mutate.ClearCompleted(), func(mutate.Result) any {
					return map[string]any{"removed": before - st.Len()}
				})
			})
		},
	}
}

func newCountCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show remaining/completed/total counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return taskCmdRun(cmd, app, func(_ *store.Store, ctrl *mutate.Controller) error {
				v := ctrl.View()
				return writeOut(cmd, app, format.Envelope{
					Data: map[string]any{
						"remaining": v.Remaining,
						"completed": v.Completed,
						"total":     v.Total,
						"label":     model.ItemsLeftLabel(v.Remaining),
					},
					Meta: viewMeta(v),
				})
			})
		},
	}
}
