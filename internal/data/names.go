package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tickforge/runtime/internal/core/ident"
)

// NameList groups identifier names for the diagnostic reverse-lookup table.
type NameList struct {
	Components []string `yaml:"components"`
	Messages   []string `yaml:"messages"`
	Extra      []string `yaml:"extra"`
}

// LoadNameList loads identifiers.yaml.
func LoadNameList(path string) (*NameList, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identifier names: %w", err)
	}
	var l NameList
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse identifier names: %w", err)
	}
	return &l, nil
}

// RegisterInto adds every listed name to t.
func (l *NameList) RegisterInto(t *ident.Table) error {
	for _, group := range [][]string{l.Components, l.Messages, l.Extra} {
		if err := t.RegisterAll(group...); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the total number of names listed.
func (l *NameList) Count() int {
	return len(l.Components) + len(l.Messages) + len(l.Extra)
}
