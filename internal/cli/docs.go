package cli

import (
	"fmt"
	"strings"

	"todo-cli/internal/docs"
	"todo-cli/internal/format"
	"todo-cli/internal/tui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const docsWrapWidth = 80

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, format.Envelope{Data: map[string]any{"topics": docs.Topics()}})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `todo docs` to list topics)", topic))
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}

			if strings.EqualFold(strings.TrimSpace(app.Format), format.FormatText) {
				// Styled output only when color is enabled (a terminal, no NO_COLOR).
				rendered := tui.RenderMarkdownPlain(body, docsWrapWidth)
				if !color.NoColor {
					rendered = tui.RenderMarkdown(body, docsWrapWidth)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return err
			}

			return writeOut(cmd, app, format.Envelope{Data: map[string]any{"topic": strings.ToLower(topic), "markdown": body}})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope)")

	return cmd
}
