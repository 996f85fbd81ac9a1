package publish

import (
	"bytes"
	"strings"

	"todo-cli/internal/model"
)

type RenderOptions struct {
	// Title is the top-level heading (default "Todo").
	Title  string
	Filter model.Filter
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

// RenderChecklist renders tasks as a GitHub-style task list, followed by the remaining count.
func RenderChecklist(tasks []model.Task, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Todo"
	}
	f := opt.Filter
	if !f.Valid() {
		f = model.FilterAll
	}

	writeLn("# " + title)
	writeLn("")

	visible := model.Visible(tasks, f)
	if len(visible) == 0 {
		writeLn("_Nothing here._")
	}
	for _, t := range visible {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		writeLn("- " + box + " " + mdEscaper.Replace(t.Text))
	}

	writeLn("")
	footer := model.ItemsLeftLabel(model.Remaining(tasks))
	if f != model.FilterAll {
		footer += " · showing " + f.Label()
	}
	writeLn("_" + footer + "_")
	return buf.String()
}
