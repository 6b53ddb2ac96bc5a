package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// readInput returns the contents of path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// decodeOneOrMany decodes a YAML or JSON document holding either a single
// item or a list of items. JSON is accepted because it is valid YAML.
func decodeOneOrMany[T any](data []byte) ([]T, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("input is empty")
	}
	doc := root.Content[0]

	if doc.Kind == yaml.SequenceNode {
		var items []T
		if err := decodeStrict(doc, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var item T
	if err := decodeStrict(doc, &item); err != nil {
		return nil, err
	}
	return []T{item}, nil
}

// decodeStrict re-encodes node so that unknown fields are rejected.
func decodeStrict(node *yaml.Node, v any) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(v)
}

func (a *app) write(w io.Writer, v any) error {
	if a.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
