package ecs

import "github.com/tickforge/runtime/internal/core/ident"

// Filter is a processor's acceptance predicate.
type Filter func(*Entity) bool

// Accept admits every entity.
func Accept(*Entity) bool { return true }

// WithAll admits entities carrying every tag.
func WithAll(tags ...ident.ID) Filter {
	return func(e *Entity) bool {
		for _, t := range tags {
			if !e.HasComponent(t) {
				return false
			}
		}
		return true
	}
}

// WithAny admits entities carrying at least one tag.
func WithAny(tags ...ident.ID) Filter {
	return func(e *Entity) bool {
		for _, t := range tags {
			if e.HasComponent(t) {
				return true
			}
		}
		return false
	}
}

// Without admits entities carrying none of the tags.
func Without(tags ...ident.ID) Filter {
	return func(e *Entity) bool {
		for _, t := range tags {
			if e.HasComponent(t) {
				return false
			}
		}
		return true
	}
}

// And admits entities accepted by every filter.
func And(filters ...Filter) Filter {
	return func(e *Entity) bool {
		for _, f := range filters {
			if !f(e) {
				return false
			}
		}
		return true
	}
}
