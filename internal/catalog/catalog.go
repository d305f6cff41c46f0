// Package catalog lists the countries and categories offered by the search form.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Country is a selectable country code
type Country struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Catalog holds the choices rendered on the index page
type Catalog struct {
	Categories []string  `yaml:"categories"`
	Countries  []Country `yaml:"countries"`
}

// Default parses the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a catalog from YAML
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(c.Categories) == 0 || len(c.Countries) == 0 {
		return nil, fmt.Errorf("catalog must list categories and countries")
	}
	return &c, nil
}
