package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults are the document-level settings applied when a document omits them.
type Defaults struct {
	Lazy    bool
	Cascade string
	Access  string
}

// StockDefaults returns lazy associations, cascade "none" and "property" access.
func StockDefaults() Defaults {
	return Defaults{Lazy: true, Cascade: "none", Access: "property"}
}

// LoadFile loads and parses a YAML mapping document from the given path.
func LoadFile(path string, defaults Defaults) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping document %s: %w", path, err)
	}

	doc, err := ParseWithDefaults(data, defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse parses YAML data into a Document using StockDefaults.
func Parse(data []byte) (*Document, error) {
	return ParseWithDefaults(data, StockDefaults())
}

// ParseWithDefaults parses YAML data into a Document, filling omitted
// document-level settings from defaults.
func ParseWithDefaults(data []byte, defaults Defaults) (*Document, error) {
	var doc Document

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&doc, defaults)

	return &doc, nil
}

// applyDefaults fills in default values for optional document-level settings.
func applyDefaults(doc *Document, defaults Defaults) {
	if doc.DefaultLazy == nil {
		lazy := defaults.Lazy
		doc.DefaultLazy = &lazy
	}

	if doc.DefaultCascade == "" {
		doc.DefaultCascade = defaults.Cascade
	}

	if doc.DefaultAccess == "" {
		doc.DefaultAccess = defaults.Access
	}
}
