package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Envelope is the shape of every CLI response.
type Envelope struct {
	Data any            `json:"data" yaml:"data"`
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - yaml
// - text (human-oriented listing)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return WriteJSON(w, v, pretty)
	case FormatYAML, "yml":
		return WriteYAML(w, v)
	case FormatText:
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
