package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal converts a graph to indented JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a graph as indented JSON to w.
func Write(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a graph written by Write. Row values keep numbers as
// json.Number.
func Read(r io.Reader) (*Graph, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var g Graph
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	return &g, nil
}
