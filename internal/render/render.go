// Package render writes a report in a textual format.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/issue-report/internal/domain"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Renderer writes a report to w.
type Renderer interface {
	Render(w io.Writer, report domain.Report) error
}

// New returns the renderer for format.
func New(format string) (Renderer, error) {
	switch format {
	case FormatJSON, "":
		return JSONRenderer{Indent: "  "}, nil
	case FormatYAML:
		return YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// JSONRenderer renders the report as JSON. Map keys are sorted, so the same
// report always produces the same bytes.
type JSONRenderer struct {
	Indent string
}

func (r JSONRenderer) Render(w io.Writer, report domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", r.Indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return nil
}

// YAMLRenderer renders the report as YAML.
type YAMLRenderer struct{}

func (YAMLRenderer) Render(w io.Writer, report domain.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to marshal report to YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML report: %w", err)
	}
	return nil
}
