package model

import (
	"fmt"
	"strings"
)

// Filter is the visibility criterion applied to the task list.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters returns every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

type UnknownFilterError struct {
	Value string
}

func (e UnknownFilterError) Error() string {
	return fmt.Sprintf("unknown filter: %q (expected all|active|completed)", e.Value)
}

// ParseFilter accepts the filter names case-insensitively. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	default:
		return FilterAll, UnknownFilterError{Value: s}
	}
}

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Match reports whether t is visible under f. Unknown filters behave like all.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Visible projects tasks through f, preserving order. The input is never modified.
func Visible(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Selector holds the currently selected filter. The zero value selects FilterAll.
type Selector struct {
	current Filter
}

func (s *Selector) Set(f Filter) {
	if !f.Valid() {
		f = FilterAll
	}
	s.current = f
}

func (s *Selector) Current() Filter {
	if s == nil || !s.current.Valid() {
		return FilterAll
	}
	return s.current
}

// IsActive reports whether f is the selected filter; exactly one filter is active at a time.
func (s *Selector) IsActive(f Filter) bool {
	return s.Current() == f
}

func (s *Selector) Reset() {
	s.current = FilterAll
}
