package ontology

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML ontology document and builds a checked Ontology
func Load(r io.Reader) (*Ontology, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode ontology: %w", err)
	}
	return New(doc)
}

// LoadFile reads an ontology from a YAML file
func LoadFile(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ontology: %w", err)
	}
	o, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// FromFile returns the built-in ontology when path is empty, otherwise the file
func FromFile(path string) (*Ontology, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Encode writes doc as YAML
func Encode(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode ontology: %w", err)
	}
	return enc.Close()
}
