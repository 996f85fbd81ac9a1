package model

import (
	"strconv"
	"strings"
)

// Task is a single to-do item. The JSON shape is also the persisted record shape.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// NormalizeText trims surrounding whitespace. An empty result means "no text".
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}

// Remaining counts tasks that are not completed across the whole list.
func Remaining(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CountCompleted counts completed tasks.
func CountCompleted(tasks []Task) int {
	return len(tasks) - Remaining(tasks)
}

// ItemsLeftLabel renders the remaining-count display ("1 item left", "3 items left").
func ItemsLeftLabel(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return strconv.Itoa(n) + " items left"
}
