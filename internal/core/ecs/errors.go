package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrComponentNotFound is returned when an entity has no component of the
	// requested type.
	ErrComponentNotFound = errors.New("component not found")
	// ErrEntityFinalized is returned when a finalized entity is mutated.
	ErrEntityFinalized = errors.New("entity is finalized")
	// ErrInvalidComponent is returned when a nil component is passed.
	ErrInvalidComponent = errors.New("invalid component reference")
	// ErrProcessorContract is returned when an unfinalized entity is offered
	// to a processor.
	ErrProcessorContract = errors.New("processor contract violation")

	ErrInvalidEntity    = errors.New("invalid entity reference")
	ErrEntityRegistered = errors.New("entity already registered")
	ErrHierarchyCycle   = errors.New("parent assignment would create a cycle")
	ErrProcessorState   = errors.New("processor in wrong lifecycle state")
)

// EntityError identifies the entity (and component type, if any) involved in
// a contract violation. It unwraps to one of the sentinel errors above.
type EntityError struct {
	ID        EntityID
	Name      string
	Component string
	Processor string
	Err       error
}

func (e *EntityError) Error() string {
	msg := fmt.Sprintf("entity %q (id %d)", e.Name, e.ID)
	if e.Component != "" {
		msg += ", component " + e.Component
	}
	if e.Processor != "" {
		msg += ", processor " + e.Processor
	}
	return msg + ": " + e.Err.Error()
}

func (e *EntityError) Unwrap() error { return e.Err }

func entityError(e *Entity, component string, err error) error {
	return &EntityError{ID: e.id, Name: e.name, Component: component, Err: err}
}
