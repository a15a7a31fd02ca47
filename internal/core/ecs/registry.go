package ecs

import "iter"

// EntitySet is an insertion-ordered set of entities keyed by id. The Manager
// keeps its authoritative set in one and every processor keeps its subset in
// another.
type EntitySet struct {
	index map[EntityID]int
	items []*Entity
}

func NewEntitySet() *EntitySet {
	return &EntitySet{
		index: make(map[EntityID]int, 64),
		items: make([]*Entity, 0, 64),
	}
}

// Add inserts e and reports whether it was not already present.
func (s *EntitySet) Add(e *Entity) bool {
	if _, ok := s.index[e.id]; ok {
		return false
	}
	s.index[e.id] = len(s.items)
	s.items = append(s.items, e)
	return true
}

// Remove deletes the entity with the given id, preserving the order of the rest.
func (s *EntitySet) Remove(id EntityID) (*Entity, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	e := s.items[i]
	delete(s.index, id)
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].id] = j
	}
	return e, true
}

func (s *EntitySet) Get(id EntityID) (*Entity, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

func (s *EntitySet) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *EntitySet) Len() int { return len(s.items) }

// Each calls fn for every entity in insertion order.
func (s *EntitySet) Each(fn func(*Entity)) {
	for _, e := range s.items {
		fn(e)
	}
}

func (s *EntitySet) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range s.items {
			if !yield(e) {
				return
			}
		}
	}
}

// Slice returns a copy of the entities in insertion order.
func (s *EntitySet) Slice() []*Entity {
	out := make([]*Entity, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the ids in insertion order.
func (s *EntitySet) IDs() []EntityID {
	out := make([]EntityID, len(s.items))
	for i, e := range s.items {
		out[i] = e.id
	}
	return out
}
