package ecs

import (
	"fmt"

	"github.com/tickforge/runtime/internal/core/ident"
)

// EntityID is assigned by the Manager on registration. Zero means the entity
// has not been registered.
type EntityID uint64

func (id EntityID) IsZero() bool { return id == 0 }

// Entity is a named bag of components with an optional, non-owning parent.
// It is mutable until finalized; the Manager finalizes it on registration.
type Entity struct {
	id         EntityID
	name       string
	parent     *Entity
	components componentSet
	finalized  bool
}

func NewEntity(name string) *Entity {
	return &Entity{name: name}
}

func (e *Entity) ID() EntityID    { return e.id }
func (e *Entity) Name() string    { return e.name }
func (e *Entity) Parent() *Entity { return e.parent }
func (e *Entity) Finalized() bool { return e.finalized }
func (e *Entity) Len() int        { return e.components.len() }
func (e *Entity) String() string  { return fmt.Sprintf("%s#%d", e.name, e.id) }

// Finalize freezes the component set. Calling it again has no effect.
func (e *Entity) Finalize() { e.finalized = true }

// SetParent sets (or clears, with nil) the parent back-reference.
func (e *Entity) SetParent(p *Entity) error {
	if e.finalized {
		return entityError(e, "", ErrEntityFinalized)
	}
	for q := p; q != nil; q = q.parent {
		if q == e {
			return entityError(e, "", ErrHierarchyCycle)
		}
	}
	e.parent = p
	return nil
}

// AddComponent inserts c, replacing any component with the same type tag.
func (e *Entity) AddComponent(c Component) error {
	if isNil(c) {
		return entityError(e, "", ErrInvalidComponent)
	}
	if e.finalized {
		return entityError(e, c.TypeName(), ErrEntityFinalized)
	}
	e.components.put(c)
	return nil
}

// RemoveComponent drops the component with the given tag. Absent tags are
// ignored.
func (e *Entity) RemoveComponent(tag ident.ID) error {
	if e.finalized {
		return entityError(e, tag.String(), ErrEntityFinalized)
	}
	e.components.remove(tag)
	return nil
}

// RemoveComponentOf drops the component sharing c's type tag.
func (e *Entity) RemoveComponentOf(c Component) error {
	if isNil(c) {
		return entityError(e, "", ErrInvalidComponent)
	}
	if e.finalized {
		return entityError(e, c.TypeName(), ErrEntityFinalized)
	}
	e.components.remove(c.TypeTag())
	return nil
}

func (e *Entity) HasComponent(tag ident.ID) bool {
	return e.components.has(tag)
}

func (e *Entity) HasComponentOf(c Component) bool {
	if isNil(c) {
		return false
	}
	return e.components.has(c.TypeTag())
}

// Component returns the component stored under tag.
func (e *Entity) Component(tag ident.ID) (Component, error) {
	c, ok := e.components.get(tag)
	if !ok {
		return nil, entityError(e, tag.String(), ErrComponentNotFound)
	}
	return c, nil
}

// Components returns the components in insertion order.
func (e *Entity) Components() []Component {
	out := make([]Component, len(e.components.items))
	copy(out, e.components.items)
	return out
}
