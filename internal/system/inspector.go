package system

import (
	"fmt"
	"io"
	"slices"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/core/ecs"
	"github.com/tickforge/runtime/internal/core/event"
	"github.com/tickforge/runtime/internal/core/ident"
)

// EntityView is a read-only description of one entity.
type EntityView struct {
	ID         uint64          `yaml:"id"`
	Name       string          `yaml:"name"`
	Parent     uint64          `yaml:"parent,omitempty"`
	Components []ComponentView `yaml:"components"`
}

type ComponentView struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value,omitempty"`
}

// Inspector sees every entity and produces snapshots for debugging. It keeps
// a history of recent event messages when one is attached.
type Inspector struct {
	ecs.BaseProcessor
	names   *ident.Table
	history *event.History
}

func NewInspector(names *ident.Table, history *event.History) *Inspector {
	return &Inspector{
		BaseProcessor: ecs.NewBaseProcessor("inspector", ecs.Accept),
		names:         names,
		history:       history,
	}
}

// Snapshot describes all entities, ordered by ID. Components appear in
// insertion order.
func (in *Inspector) Snapshot() []EntityView {
	out := make([]EntityView, 0, in.Entities().Len())
	for e := range in.Entities().All() {
		v := EntityView{ID: uint64(e.ID()), Name: e.Name()}
		if p := e.Parent(); p != nil {
			v.Parent = uint64(p.ID())
		}
		for _, c := range e.Components() {
			cv := ComponentView{Type: c.TypeName()}
			if d, ok := c.(component.Describer); ok {
				cv.Value = d.Describe()
			}
			v.Components = append(v.Components, cv)
		}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b EntityView) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Digest hashes the current snapshot. Two worlds with the same entities,
// hierarchy and component values produce the same digest.
func (in *Inspector) Digest() uint64 {
	h := xxhash.New()
	for _, v := range in.Snapshot() {
		fmt.Fprintf(h, "%d|%s|%d\n", v.ID, v.Name, v.Parent)
		for _, c := range v.Components {
			fmt.Fprintf(h, "\t%s=%s\n", c.Type, c.Value)
		}
	}
	return h.Sum64()
}

// Dump writes the snapshot and the recent event history as YAML.
func (in *Inspector) Dump(w io.Writer) error {
	doc := struct {
		Entities []EntityView `yaml:"entities"`
		Events   []string     `yaml:"events,omitempty"`
	}{Entities: in.Snapshot()}
	if in.history != nil {
		for _, m := range in.history.Messages() {
			doc.Events = append(doc.Events, event.Describe(m, in.names))
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

// History returns the attached event history, or nil.
func (in *Inspector) History() *event.History { return in.history }
