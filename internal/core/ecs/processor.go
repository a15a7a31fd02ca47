package ecs

import (
	"fmt"
	"time"
)

// Processor filters the Manager's entities into its own subset and is driven
// once per tick (Update) and once per frame (Draw).
type Processor interface {
	Name() string
	AcceptsEntity(e *Entity) bool
	// AddEntity offers a registered entity. It returns false, nil when the
	// entity is rejected by the processor's filter.
	AddEntity(e *Entity) (bool, error)
	// RemoveEntity drops id from the subset; false if it was not there.
	RemoveEntity(id EntityID) bool

	Initialize() error
	Update(dt time.Duration) error
	Draw() error
	Cleanup() error
}

// ProcessorState is the lifecycle position of a registered processor.
type ProcessorState uint8

const (
	StateUninitialized ProcessorState = iota
	StateInitialized
	StateCleanedUp
)

func (s ProcessorState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateCleanedUp:
		return "cleaned-up"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// BaseProcessor implements the subset bookkeeping shared by all processors.
// Embed it and override the lifecycle methods you need. Acceptance is decided
// by the Filter given at construction only: an AcceptsEntity method declared
// on the embedding type is not seen by BaseProcessor.AddEntity.
//
// Processors that keep extra per-entity state override AddEntity and
// RemoveEntity, call the base method first and act on its result.
type BaseProcessor struct {
	name     string
	filter   Filter
	entities *EntitySet
}

func NewBaseProcessor(name string, filter Filter) BaseProcessor {
	if filter == nil {
		filter = Accept
	}
	return BaseProcessor{
		name:     name,
		filter:   filter,
		entities: NewEntitySet(),
	}
}

func (p *BaseProcessor) Name() string { return p.name }

func (p *BaseProcessor) AcceptsEntity(e *Entity) bool { return p.filter(e) }

func (p *BaseProcessor) AddEntity(e *Entity) (bool, error) {
	if e == nil {
		return false, fmt.Errorf("processor %s: %w", p.name, ErrInvalidEntity)
	}
	if !e.finalized {
		return false, &EntityError{ID: e.id, Name: e.name, Processor: p.name, Err: ErrProcessorContract}
	}
	if e.id.IsZero() {
		panic(fmt.Sprintf("processor %s: entity %q offered without an id", p.name, e.name))
	}
	if !p.filter(e) {
		return false, nil
	}
	return p.entities.Add(e), nil
}

func (p *BaseProcessor) RemoveEntity(id EntityID) bool {
	_, ok := p.entities.Remove(id)
	return ok
}

// Entities is the processor-owned subset.
func (p *BaseProcessor) Entities() *EntitySet { return p.entities }

func (p *BaseProcessor) Initialize() error            { return nil }
func (p *BaseProcessor) Update(_ time.Duration) error { return nil }
func (p *BaseProcessor) Draw() error                  { return nil }
func (p *BaseProcessor) Cleanup() error               { return nil }
