package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Formatter writes command results in one output format.
type Formatter interface {
	Format(data any) error
}

// NewFormatter creates a formatter for text, json or yaml.
func NewFormatter(format string, w io.Writer) (Formatter, error) {
	if w == nil {
		w = os.Stdout
	}
	switch format {
	case "json":
		return &JSONFormatter{w: w}, nil
	case "yaml":
		return &YAMLFormatter{w: w}, nil
	case "text", "":
		return &TextFormatter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (supported: text, json, yaml)", format)
	}
}

// JSONFormatter formats output as indented JSON.
type JSONFormatter struct {
	w io.Writer
}

func (f *JSONFormatter) Format(data any) error {
	encoder := json.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct {
	w io.Writer
}

func (f *YAMLFormatter) Format(data any) error {
	encoder := yaml.NewEncoder(f.w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

// TextFormatter prints strings and fmt.Stringer values.
type TextFormatter struct {
	w io.Writer
}

func (f *TextFormatter) Format(data any) error {
	switch v := data.(type) {
	case string:
		_, err := fmt.Fprintln(f.w, v)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.w, v.String())
		return err
	default:
		return fmt.Errorf("text output is not available for %T", data)
	}
}

var _ Formatter = (*JSONFormatter)(nil)
var _ Formatter = (*YAMLFormatter)(nil)
var _ Formatter = (*TextFormatter)(nil)

// view pairs a structured payload with its terminal rendering.
type view struct {
	data   any
	render func() string
}

func newView(data any, render func() string) view {
	return view{data: data, render: render}
}

func (v view) String() string               { return v.render() }
func (v view) MarshalJSON() ([]byte, error) { return json.Marshal(v.data) }
func (v view) MarshalYAML() (any, error)    { return v.data, nil }

// writeOutput formats data with the --output formatter on the command's stdout.
func writeOutput(cmd *cobra.Command, data any) error {
	formatter, err := NewFormatter(outputFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return formatter.Format(data)
}
