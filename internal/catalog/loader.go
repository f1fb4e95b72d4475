package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// Load reads the catalog document at path. A missing, unreadable, or
// invalid file falls back to the built-in dataset so the engine always has
// content to work against; the error describes what went wrong for logging
// but the returned catalog is always usable.
func (l *FSLoader) Load(path string) (Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Builtin(), fmt.Errorf("read catalog %s: %w", path, err)
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Builtin(), fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Builtin(), fmt.Errorf("validate catalog %s: %w", path, err)
	}
	applyDefaults(&c)
	return c, nil
}

func applyDefaults(c *Catalog) {
	if c.Assessment.TimeSeconds <= 0 {
		c.Assessment.TimeSeconds = 300
	}
	if len(c.Quotes) == 0 {
		c.Quotes = Builtin().Quotes
	}
}
