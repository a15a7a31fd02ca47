package ident

import (
	"errors"
	"fmt"
	"sort"
)

// ErrCollision is returned when two different names hash to the same ID.
var ErrCollision = errors.New("identifier collision")

// Table maps IDs back to the text they were computed from. It is only
// populated by callers that register names explicitly; Of never touches it.
type Table struct {
	names map[ID]string
}

func NewTable() *Table {
	return &Table{names: make(map[ID]string, 64)}
}

// Register hashes text, records the reverse mapping and returns the ID.
// Registering the same text twice is harmless.
func (t *Table) Register(text string) (ID, error) {
	id := Of(text)
	if prev, ok := t.names[id]; ok && prev != text {
		return id, fmt.Errorf("%w: %q and %q both map to %s", ErrCollision, prev, text, id)
	}
	t.names[id] = text
	return id, nil
}

// RegisterAll registers every name, stopping at the first collision.
func (t *Table) RegisterAll(texts ...string) error {
	for _, text := range texts {
		if _, err := t.Register(text); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) Lookup(id ID) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// Name returns the registered text for id, or its raw form when unknown.
func (t *Table) Name(id ID) string {
	if t != nil {
		if name, ok := t.names[id]; ok {
			return name
		}
	}
	return id.String()
}

func (t *Table) Len() int { return len(t.names) }

// Names returns every registered name, sorted.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.names))
	for _, name := range t.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
