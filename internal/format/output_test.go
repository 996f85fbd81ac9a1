package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"todo-cli/internal/model"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func sampleEnvelope() Envelope {
	return Envelope{
		Data: []model.Task{
			{ID: "0123456789abcdef", Text: "Walk dog"},
			{ID: "t1", Text: "Buy milk", Completed: true},
		},
		Meta: map[string]any{"remaining": 1, "filter": model.FilterAll},
	}
}

func TestWrite_JSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleEnvelope(), "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got struct {
		Data []model.Task   `json:"data"`
		Meta map[string]any `json:"meta"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if len(got.Data) != 2 || got.Data[1].Text != "Buy milk" || !got.Data[1].Completed {
		t.Fatalf("unexpected data: %#v", got.Data)
	}
	if got.Meta["remaining"] != float64(1) || got.Meta["filter"] != "all" {
		t.Fatalf("unexpected meta: %#v", got.Meta)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected compact single-line json; got:\n%s", buf.String())
	}
}

func TestWrite_PrettyJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleEnvelope(), FormatJSON, true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"data\"") {
		t.Fatalf("expected indented json; got:\n%s", buf.String())
	}
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleEnvelope(), "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got struct {
		Data []model.Task   `yaml:"data"`
		Meta map[string]any `yaml:"meta"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal yaml: %v\n%s", err, buf.String())
	}
	if len(got.Data) != 2 || got.Data[0].ID != "0123456789abcdef" {
		t.Fatalf("unexpected yaml data: %#v", got.Data)
	}
	if got.Meta["remaining"] != 1 {
		t.Fatalf("unexpected yaml meta: %#v", got.Meta)
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleEnvelope(), "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "[ ] 01234567  Walk dog\n[x] t1  Buy milk\n1 item left\n"
	if got := buf.String(); got != want {
		t.Fatalf("text output mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestWrite_TextFilteredHint(t *testing.T) {
	var buf bytes.Buffer
	env := Envelope{Data: []model.Task{}, Meta: map[string]any{"remaining": 3, "filter": model.FilterCompleted}}
	if err := WriteText(&buf, env); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if got, want := buf.String(), "3 items left (showing completed)\n"; got != want {
		t.Fatalf("got %q; want %q", got, want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("abc"); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if got := ShortID("0123456789"); got != "01234567" {
		t.Fatalf("got %q", got)
	}
}
