package main

import (
	"os"
	"strings"

	"todo-cli/internal/cli"
)

// quickAddText reports whether a positional token is the quick-add form ("+text" or "+").
func quickAddText(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "+") {
		return "", false
	}
	return strings.TrimPrefix(s, "+"), true
}

func rewriteQuickAddArgs(argv []string) []string {
	// Convenience: `todo +Buy milk` works like `todo add Buy milk`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `todo --workspace home +Buy milk`), so we look for
	// the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--workspace": true,
		"--backend":   true,
		"--format":    true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(i int) []string {
		text, _ := quickAddText(argv[i])
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "add")
		if text != "" {
			out = append(out, text)
		}
		out = append(out, argv[i+1:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				if _, ok := quickAddText(argv[i+1]); ok {
					out := rewrite(i + 1)
					// "add" must precede "--" for cobra to route it.
					out[i], out[i+1] = out[i+1], out[i]
					return out
				}
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}

		// First positional token.
		if _, ok := quickAddText(a); ok {
			return rewrite(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteQuickAddArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
