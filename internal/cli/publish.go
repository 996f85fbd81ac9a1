package cli

import (
	"todo-cli/internal/format"
	"todo-cli/internal/model"
	"todo-cli/internal/mutate"
	"todo-cli/internal/publish"
	"todo-cli/internal/store"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var to string
	var filter string
	var title string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the task list as a Markdown checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			return taskCmdRun(cmd, app, func(st *store.Store, _ *mutate.Controller) error {
				if title == "" {
					title = app.Workspace
				}
				res, err := publish.Write(st.Tasks(), to, publish.WriteOptions{
					Title:     title,
					Filter:    f,
					Overwrite: overwrite,
				})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Envelope{Data: res})
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output file or directory (a directory gets todo.md)")
	cmd.Flags().StringVar(&filter, "filter", "all", "Which tasks to include (all|active|completed)")
	cmd.Flags().StringVar(&title, "title", "", "Heading (default: workspace name)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
