// Package catalog holds the list of business types offered to clients.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed types.yaml
var defaultTypes []byte

// BusinessType is one selectable type tag with its display label.
type BusinessType struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Catalog is an ordered, read-only list of business types.
type Catalog struct {
	types []BusinessType
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(defaultTypes)
}

// Parse builds a catalog from YAML. Values must be unique and non-blank.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Types []BusinessType `yaml:"types"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse business type catalog: %w", err)
	}

	c := &Catalog{types: make([]BusinessType, 0, len(doc.Types))}
	seen := make(map[string]struct{}, len(doc.Types))
	for _, t := range doc.Types {
		t.Value = strings.TrimSpace(t.Value)
		if t.Value == "" {
			return nil, fmt.Errorf("business type catalog: blank value for label %q", t.Label)
		}
		if _, dup := seen[t.Value]; dup {
			return nil, fmt.Errorf("business type catalog: duplicate value %q", t.Value)
		}
		seen[t.Value] = struct{}{}
		c.types = append(c.types, t)
	}
	return c, nil
}

// Types returns a copy of the catalog in display order.
func (c *Catalog) Types() []BusinessType {
	return append([]BusinessType(nil), c.types...)
}
