package ecs

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type registration struct {
	p     Processor
	state ProcessorState
}

// Manager owns the authoritative entity set, allocates ids and fans entity
// registration and removal out to every processor. Processors run in
// registration order; later processors may depend on state produced by
// earlier ones in the same tick.
type Manager struct {
	log         *zap.Logger
	nextID      EntityID
	entities    *EntitySet
	processors  []*registration
	removeQueue []EntityID
	initialized bool
}

func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:         log,
		entities:    NewEntitySet(),
		processors:  make([]*registration, 0, 16),
		removeQueue: make([]EntityID, 0, 64),
	}
}

// AddEntity finalizes e, assigns it the next id and offers it to every
// processor. The Manager owns e from here on. If a processor fails, the
// registration is rolled back: no processor keeps e, the Manager forgets it
// and e may be added again. The id it was given is not reused.
func (m *Manager) AddEntity(e *Entity) (EntityID, error) {
	if e == nil {
		return 0, ErrInvalidEntity
	}
	if !e.id.IsZero() {
		return e.id, entityError(e, "", ErrEntityRegistered)
	}
	e.Finalize()
	m.nextID++
	e.id = m.nextID
	m.entities.Add(e)

	for i, r := range m.processors {
		if _, err := r.p.AddEntity(e); err != nil {
			err = fmt.Errorf("offer %s to %s: %w", e, r.p.Name(), err)
			m.unwindEntity(e, i)
			return 0, err
		}
	}
	m.log.Debug("entity added", zap.Uint64("entity", uint64(e.id)), zap.String("name", e.name))
	return e.id, nil
}

// RemoveEntity drops id and notifies the processors holding it.
func (m *Manager) RemoveEntity(id EntityID) bool {
	e, ok := m.entities.Remove(id)
	if !ok {
		return false
	}
	for _, r := range m.processors {
		r.p.RemoveEntity(id)
	}
	m.log.Debug("entity removed", zap.Uint64("entity", uint64(id)), zap.String("name", e.name))
	return true
}

// QueueRemoval defers removal of id until FlushRemovals.
func (m *Manager) QueueRemoval(id EntityID) {
	m.removeQueue = append(m.removeQueue, id)
}

// FlushRemovals removes every queued entity and returns how many were
// actually removed. Called once at the end of each tick.
func (m *Manager) FlushRemovals() int {
	n := 0
	for _, id := range m.removeQueue {
		if m.RemoveEntity(id) {
			n++
		}
	}
	m.removeQueue = m.removeQueue[:0]
	return n
}

// AddEntityProcessor registers p and offers it every known entity, so the
// final membership does not depend on registration order. If the Manager has
// already been initialized, p is initialized immediately.
func (m *Manager) AddEntityProcessor(p Processor) error {
	if p == nil {
		return fmt.Errorf("add processor: %w", ErrProcessorState)
	}
	r := &registration{p: p}
	m.processors = append(m.processors, r)

	for _, e := range m.entities.items {
		if _, err := p.AddEntity(e); err != nil {
			err = fmt.Errorf("offer %s to %s: %w", e, p.Name(), err)
			m.unwindProcessor(p)
			return err
		}
	}
	if m.initialized {
		if err := m.initialize(r); err != nil {
			m.unwindProcessor(p)
			return err
		}
	}
	m.log.Info("processor registered",
		zap.String("processor", p.Name()),
		zap.Int("order", len(m.processors)-1))
	return nil
}

// unwindEntity undoes a failed AddEntity: processors[0..failed] forget e, the
// authoritative set drops it and its id is cleared so it can be added again.
func (m *Manager) unwindEntity(e *Entity, failed int) {
	for _, r := range m.processors[:failed+1] {
		r.p.RemoveEntity(e.id)
	}
	m.entities.Remove(e.id)
	e.id = 0
}

// unwindProcessor undoes a failed AddEntityProcessor for the last registered
// processor p.
func (m *Manager) unwindProcessor(p Processor) {
	for _, e := range m.entities.items {
		p.RemoveEntity(e.id)
	}
	m.processors = m.processors[:len(m.processors)-1]
}

// InitializeProcessors runs Initialize on every processor not yet
// initialized, in registration order.
func (m *Manager) InitializeProcessors() error {
	for _, r := range m.processors {
		if r.state != StateUninitialized {
			continue
		}
		if err := m.initialize(r); err != nil {
			return err
		}
	}
	m.initialized = true
	return nil
}

func (m *Manager) initialize(r *registration) error {
	if err := r.p.Initialize(); err != nil {
		return fmt.Errorf("initialize %s: %w", r.p.Name(), err)
	}
	r.state = StateInitialized
	return nil
}

// CleanupProcessors runs Cleanup on every initialized processor in reverse
// registration order. All processors are cleaned up even if some fail.
func (m *Manager) CleanupProcessors() error {
	var errs []error
	for i := len(m.processors) - 1; i >= 0; i-- {
		r := m.processors[i]
		if r.state != StateInitialized {
			continue
		}
		if err := r.p.Cleanup(); err != nil {
			errs = append(errs, fmt.Errorf("cleanup %s: %w", r.p.Name(), err))
		}
		r.state = StateCleanedUp
	}
	m.initialized = false
	return errors.Join(errs...)
}

// Update runs every processor's Update in registration order, stopping at
// the first error.
func (m *Manager) Update(dt time.Duration) error {
	for _, r := range m.processors {
		if r.state != StateInitialized {
			return fmt.Errorf("update %s (%s): %w", r.p.Name(), r.state, ErrProcessorState)
		}
		if err := r.p.Update(dt); err != nil {
			return fmt.Errorf("update %s: %w", r.p.Name(), err)
		}
	}
	return nil
}

// Draw runs every processor's Draw in registration order.
func (m *Manager) Draw() error {
	for _, r := range m.processors {
		if r.state != StateInitialized {
			return fmt.Errorf("draw %s (%s): %w", r.p.Name(), r.state, ErrProcessorState)
		}
		if err := r.p.Draw(); err != nil {
			return fmt.Errorf("draw %s: %w", r.p.Name(), err)
		}
	}
	return nil
}

func (m *Manager) Entity(id EntityID) (*Entity, bool) { return m.entities.Get(id) }

// Entities returns the registered entities in id order.
func (m *Manager) Entities() []*Entity { return m.entities.Slice() }

func (m *Manager) Len() int { return m.entities.Len() }

// Processors returns the registered processors in registration order.
func (m *Manager) Processors() []Processor {
	out := make([]Processor, len(m.processors))
	for i, r := range m.processors {
		out[i] = r.p
	}
	return out
}

// State reports the lifecycle state of a registered processor.
func (m *Manager) State(p Processor) (ProcessorState, bool) {
	for _, r := range m.processors {
		if r.p == p {
			return r.state, true
		}
	}
	return StateUninitialized, false
}
