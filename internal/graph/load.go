package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFiles reads concept and edge JSON files and builds the graph.
// The node file is a JSON array of concepts; the edge file is a JSON array
// of {de, a} prerequisite pairs.
func LoadFiles(nodePath, edgePath string) (*Graph, error) {
	concepts, err := loadJSON[[]Concept](nodePath)
	if err != nil {
		return nil, fmt.Errorf("load concepts: %w", err)
	}
	edges, err := loadJSON[[]Edge](edgePath)
	if err != nil {
		return nil, fmt.Errorf("load edges: %w", err)
	}
	// Structural problems (including cycles) are tolerated here; the graph
	// command runs Validate explicitly. Depth computation falls back safely
	// on malformed input.
	return New(concepts, edges), nil
}

func loadJSON[T any](path string) (T, error) {
	var out T
	data, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// ValidateFiles loads the node and edge files and runs the structural
// checks without building a graph.
func ValidateFiles(nodePath, edgePath string) error {
	concepts, err := loadJSON[[]Concept](nodePath)
	if err != nil {
		return fmt.Errorf("load concepts: %w", err)
	}
	edges, err := loadJSON[[]Edge](edgePath)
	if err != nil {
		return fmt.Errorf("load edges: %w", err)
	}
	return Validate(concepts, edges)
}
