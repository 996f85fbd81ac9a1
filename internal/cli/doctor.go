package cli

import (
	"todo-cli/internal/format"
	"todo-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the stored task list for problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, kv, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer kv.Close()

			report := store.Doctor(cmd.Context(), kv, store.DefaultKey)
			if err := writeOut(cmd, app, format.Envelope{
				Data: report,
				Meta: map[string]any{
					"issues":    len(report.Issues),
					"hasErrors": report.HasErrors(),
				},
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
