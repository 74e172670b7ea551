// Package importer reads whole boards from YAML or JSON files and turns them
// into densely ordered domain trees.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema is the top-level structure of a board file. JSON is accepted since
// it parses as YAML.
type Schema struct {
	Board BoardImport  `yaml:"board" json:"board"`
	Lists []ListImport `yaml:"lists" json:"lists"`
}

type BoardImport struct {
	Title string `yaml:"title" json:"title"`
}

// ListImport is one column. Lists without an order keep their file position
// relative to each other.
type ListImport struct {
	Title string       `yaml:"title" json:"title"`
	Order *int         `yaml:"order,omitempty" json:"order,omitempty"`
	Cards []CardImport `yaml:"cards,omitempty" json:"cards,omitempty"`
}

type CardImport struct {
	Title       string  `yaml:"title" json:"title"`
	Description *string `yaml:"description,omitempty" json:"description,omitempty"`
	Order       *int    `yaml:"order,omitempty" json:"order,omitempty"`
}

// Load reads and parses a board file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a board document, rejecting unknown keys.
func Parse(data []byte) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Schema
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parsing board file: document is empty")
		}
		return nil, fmt.Errorf("parsing board file: %w", err)
	}
	return &s, nil
}

// Marshal renders s as YAML.
func Marshal(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding board file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding board file: %w", err)
	}
	return buf.Bytes(), nil
}
