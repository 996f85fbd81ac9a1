package format

import (
	"fmt"
	"io"
	"sort"

	"todo-cli/internal/model"

	"github.com/fatih/color"
)

const shortIDLen = 8

var (
	colorID        = color.New(color.FgYellow)
	colorCompleted = color.New(color.Faint, color.CrossedOut)
	colorMuted     = color.New(color.Faint)
)

// WriteText renders tasks as a checklist. Other values fall back to a plain listing.
func WriteText(w io.Writer, v any) error {
	env, ok := v.(Envelope)
	if !ok {
		if p, isPtr := v.(*Envelope); isPtr && p != nil {
			env = *p
		} else {
			env = Envelope{Data: v}
		}
	}

	if err := writeTextData(w, env.Data); err != nil {
		return err
	}
	if n, ok := env.Meta["remaining"].(int); ok {
		label := model.ItemsLeftLabel(n)
		if f, ok := env.Meta["filter"].(model.Filter); ok && f != model.FilterAll {
			label += fmt.Sprintf(" (showing %s)", f)
		}
		if _, err := colorMuted.Fprintln(w, label); err != nil {
			return err
		}
	}
	return nil
}

func writeTextData(w io.Writer, data any) error {
	switch d := data.(type) {
	case nil:
		return nil
	case []model.Task:
		for _, t := range d {
			if err := writeTaskLine(w, t); err != nil {
				return err
			}
		}
		return nil
	case model.Task:
		return writeTaskLine(w, d)
	case *model.Task:
		if d == nil {
			return nil
		}
		return writeTaskLine(w, *d)
	case map[string]any:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "%s: %v\n", k, d[k]); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for _, s := range d {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(w, d)
		return err
	}
}

func writeTaskLine(w io.Writer, t model.Task) error {
	box := "[ ]"
	text := t.Text
	if t.Completed {
		box = "[x]"
		text = colorCompleted.Sprint(t.Text)
	}
	_, err := fmt.Fprintf(w, "%s %s  %s\n", box, colorID.Sprint(ShortID(t.ID)), text)
	return err
}

// ShortID is the display prefix of a task id; the CLI resolves unique prefixes back.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
