// Package catalog provides the static university reference data.
//
// The catalog is embedded into the binary, parsed once at startup, and never
// mutated afterwards. Prompt construction re-serializes the full catalog on
// every request; filtering by GPA, department or type is left to the model.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/nayeemhs/uniassist/internal/domain"
)

//go:embed universities.json
var universitiesJSON []byte

// Catalog holds the loaded university list.
type Catalog struct {
	universities []domain.University
	rendered     string
}

// Load parses the embedded university data.
func Load() (*Catalog, error) {
	var universities []domain.University
	if err := json.Unmarshal(universitiesJSON, &universities); err != nil {
		return nil, fmt.Errorf("parse embedded university data: %w", err)
	}
	if len(universities) == 0 {
		return nil, fmt.Errorf("embedded university data is empty")
	}

	// Pre-render the prompt serialization once; the catalog never changes.
	rendered, err := json.MarshalIndent(universities, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render university data: %w", err)
	}

	return &Catalog{
		universities: universities,
		rendered:     string(rendered),
	}, nil
}

// Universities returns the full catalog. Callers must not modify the slice.
func (c *Catalog) Universities() []domain.University {
	return c.universities
}

// Len returns the number of universities in the catalog.
func (c *Catalog) Len() int {
	return len(c.universities)
}

// JSON returns the indented JSON serialization of the full catalog,
// as included in every system prompt.
func (c *Catalog) JSON() string {
	return c.rendered
}
