package cli

import (
	"errors"

	"todo-cli/internal/mutate"
	"todo-cli/internal/store"
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.As(err, new(mutate.PersistError)), errors.As(err, new(*store.SaveError)):
		return 2
	default:
		return 1
	}
}
