package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo-cli/internal/model"
)

var ErrDoctorIssuesFound = errors.New("doctor found errors")

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level" yaml:"level"`
	Code    string           `json:"code" yaml:"code"`
	Message string           `json:"message" yaml:"message"`
	// Index is the position in the persisted array, when the issue is about one task.
	Index  *int   `json:"index,omitempty" yaml:"index,omitempty"`
	TaskID string `json:"taskId,omitempty" yaml:"taskId,omitempty"`
}

type DoctorReport struct {
	Key    string        `json:"key" yaml:"key"`
	Tasks  int           `json:"tasks" yaml:"tasks"`
	Issues []DoctorIssue `json:"issues" yaml:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor inspects the raw persisted value under key. Load silently discards a value
// that fails to decode; Doctor reports why.
func Doctor(ctx context.Context, kv KV, key string) DoctorReport {
	rep := DoctorReport{Key: key, Issues: []DoctorIssue{}}
	if kv == nil {
		rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "no_storage", Message: "no storage configured"})
		return rep
	}

	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "read_failed", Message: err.Error()})
		return rep
	}
	if !ok {
		rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "missing", Message: "nothing stored yet"})
		return rep
	}

	tasks, err := decodeTasks(raw)
	if err != nil {
		rep.Issues = append(rep.Issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "invalid_json",
			Message: fmt.Sprintf("stored value does not decode (the list will load empty): %v", err),
		})
		return rep
	}
	rep.Tasks = len(tasks)

	seen := map[string]int{}
	for i, t := range tasks {
		idx := i
		switch {
		case strings.TrimSpace(t.ID) == "":
			rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelError, Code: "missing_id", Message: "task has no id", Index: &idx})
		default:
			if first, dup := seen[t.ID]; dup {
				rep.Issues = append(rep.Issues, DoctorIssue{
					Level:   DoctorIssueLevelError,
					Code:    "duplicate_id",
					Message: fmt.Sprintf("id also used at index %d", first),
					Index:   &idx,
					TaskID:  t.ID,
				})
			} else {
				seen[t.ID] = i
			}
		}
		if model.NormalizeText(t.Text) == "" {
			rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "empty_text", Message: "task text is empty", Index: &idx, TaskID: t.ID})
		} else if t.Text != model.NormalizeText(t.Text) {
			rep.Issues = append(rep.Issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: "untrimmed_text", Message: "task text has surrounding whitespace", Index: &idx, TaskID: t.ID})
		}
	}
	return rep
}
