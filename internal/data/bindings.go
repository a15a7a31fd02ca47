package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tickforge/runtime/internal/core/ident"
)

// Binding maps a key to the command emitted on press and, optionally, on
// release.
type Binding struct {
	Key       string   `yaml:"key"`
	Command   string   `yaml:"command"`
	Magnitude float64  `yaml:"magnitude"`
	Release   *float64 `yaml:"release"` // magnitude emitted on release; nil emits nothing
	Note      string   `yaml:"note"`

	CommandID ident.ID `yaml:"-"`
}

// BindingTable provides lookup of key bindings by key name.
type BindingTable struct {
	bindings map[string]*Binding
	order    []string
}

// LoadBindingTable loads bindings.yaml.
func LoadBindingTable(path string) (*BindingTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bindings: %w", err)
	}
	return ParseBindingTable(raw)
}

func ParseBindingTable(raw []byte) (*BindingTable, error) {
	var entries []Binding
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse bindings: %w", err)
	}
	t := &BindingTable{
		bindings: make(map[string]*Binding, len(entries)),
		order:    make([]string, 0, len(entries)),
	}
	for i := range entries {
		b := &entries[i]
		if b.Key == "" || b.Command == "" {
			return nil, fmt.Errorf("parse bindings: entry %d needs both key and command", i)
		}
		if _, dup := t.bindings[b.Key]; dup {
			return nil, fmt.Errorf("parse bindings: key %q bound twice", b.Key)
		}
		b.CommandID = ident.Of(b.Command)
		t.bindings[b.Key] = b
		t.order = append(t.order, b.Key)
	}
	return t, nil
}

// Get returns the binding for key, or nil if none.
func (t *BindingTable) Get(key string) *Binding {
	return t.bindings[key]
}

// Commands returns the distinct command names, in file order.
func (t *BindingTable) Commands() []string {
	seen := make(map[string]bool, len(t.order))
	out := make([]string, 0, len(t.order))
	for _, k := range t.order {
		c := t.bindings[k].Command
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Count returns the total number of bindings loaded.
func (t *BindingTable) Count() int {
	return len(t.bindings)
}
