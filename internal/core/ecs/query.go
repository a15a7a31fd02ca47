package ecs

import (
	"iter"

	"github.com/tickforge/runtime/internal/core/ident"
)

func tagOf[T Component]() ident.ID {
	var zero T
	return zero.TypeTag()
}

// Get returns e's component of type T.
func Get[T Component](e *Entity) (T, error) {
	var zero T
	c, err := e.Component(tagOf[T]())
	if err != nil {
		return zero, err
	}
	t, ok := c.(T)
	if !ok {
		return zero, entityError(e, c.TypeName(), ErrComponentNotFound)
	}
	return t, nil
}

// Has reports whether e carries a component of type T.
func Has[T Component](e *Entity) bool {
	return e.HasComponent(tagOf[T]())
}

// Must is Get for callers whose filter already guarantees presence.
func Must[T Component](e *Entity) T {
	t, err := Get[T](e)
	if err != nil {
		panic(err)
	}
	return t
}

// Option holds a component that may be absent.
type Option[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Option[T] { return Option[T]{value: v, ok: true} }

func None[T any]() Option[T] { return Option[T]{} }

func (o Option[T]) Get() (T, bool)  { return o.value, o.ok }
func (o Option[T]) IsPresent() bool { return o.ok }

func (o Option[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// All yields the value once if present, otherwise nothing.
func (o Option[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if o.ok {
			yield(o.value)
		}
	}
}

// Find looks up e's component of type T without failing.
func Find[T Component](e *Entity) Option[T] {
	c, ok := e.components.get(tagOf[T]())
	if !ok {
		return None[T]()
	}
	t, ok := c.(T)
	if !ok {
		return None[T]()
	}
	return Some(t)
}
