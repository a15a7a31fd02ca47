package ecs

import (
	"reflect"

	"github.com/tickforge/runtime/internal/core/ident"
)

// Component is implemented by every component type. TypeTag must not depend
// on the receiver's state: the generic accessors call it on a zero value.
type Component interface {
	TypeTag() ident.ID
	TypeName() string
}

// componentSet stores at most one component per type tag and iterates in
// insertion order. Replacing a component keeps its original slot.
type componentSet struct {
	index map[ident.ID]int
	items []Component
}

func (s *componentSet) put(c Component) {
	if s.index == nil {
		s.index = make(map[ident.ID]int, 4)
	}
	tag := c.TypeTag()
	if i, ok := s.index[tag]; ok {
		s.items[i] = c
		return
	}
	s.index[tag] = len(s.items)
	s.items = append(s.items, c)
}

func (s *componentSet) get(tag ident.ID) (Component, bool) {
	i, ok := s.index[tag]
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

func (s *componentSet) has(tag ident.ID) bool {
	_, ok := s.index[tag]
	return ok
}

func (s *componentSet) remove(tag ident.ID) bool {
	i, ok := s.index[tag]
	if !ok {
		return false
	}
	delete(s.index, tag)
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].TypeTag()] = j
	}
	return true
}

func (s *componentSet) len() int { return len(s.items) }

// isNil catches typed nil pointers hidden inside a non-nil interface.
func isNil(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return v.IsNil()
	}
	return false
}
