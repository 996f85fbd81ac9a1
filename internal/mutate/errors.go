package mutate

import (
	"errors"
	"fmt"
)

var ErrUnknownCommand = errors.New("unknown command")

// PersistError wraps a storage failure that happened after the in-memory mutation was applied.
type PersistError struct {
	Kind Kind
	Err  error
}

func (e PersistError) Error() string {
	return fmt.Sprintf("%s: persist: %v", e.Kind, e.Err)
}

func (e PersistError) Unwrap() error { return e.Err }
