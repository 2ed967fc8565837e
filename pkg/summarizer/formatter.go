// Package summarizer records what a run captured and encoded.
package summarizer

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// NewJSONFormatter renders indented JSON.
func NewJSONFormatter() Formatter {
	return FormatFunc(func(summary *Summary) string {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Sprintf("{\"error\": %q}\n", err.Error())
		}
		return string(data) + "\n"
	})
}

// NewYAMLFormatter renders YAML.
func NewYAMLFormatter() Formatter {
	return FormatFunc(func(summary *Summary) string {
		data, err := yaml.Marshal(summary)
		if err != nil {
			return fmt.Sprintf("error: %q\n", err.Error())
		}
		return string(data)
	})
}

// FormatterFor picks a formatter from the file extension; YAML for
// .yaml and .yml, JSON otherwise.
func FormatterFor(path string) Formatter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLFormatter()
	default:
		return NewJSONFormatter()
	}
}
