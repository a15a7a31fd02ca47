package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/core/ecs"
	"github.com/tickforge/runtime/internal/core/event"
)

// ExpiryProcessor counts down Lifetime components and raises EvtExpired once
// per entity when the remaining time reaches zero. It never removes entities
// itself; see Lifecycle.
type ExpiryProcessor struct {
	ecs.BaseProcessor
	events *event.Channel
}

func NewExpiryProcessor(events *event.Channel) *ExpiryProcessor {
	return &ExpiryProcessor{
		BaseProcessor: ecs.NewBaseProcessor("expiry", ecs.WithAll(component.LifetimeType)),
		events:        events,
	}
}

func (p *ExpiryProcessor) Update(dt time.Duration) error {
	p.Entities().Each(func(e *ecs.Entity) {
		l := ecs.Must[*component.Lifetime](e)
		if l.Expired {
			return
		}
		l.Remaining -= dt
		if l.Remaining > 0 {
			return
		}
		l.Remaining = 0
		l.Expired = true
		p.events.Emit(event.New(EvtExpired, 0).With(event.EntityRef{ID: uint64(e.ID())}))
	})
	return nil
}

// Remover queues an entity for removal at the end of the current step.
type Remover interface {
	QueueRemoval(id ecs.EntityID)
}

// Lifecycle turns Destroy commands and EntityExpired events into queued
// removals.
type Lifecycle struct {
	remover Remover
	log     *zap.Logger
	queued  int
}

func NewLifecycle(remover Remover, log *zap.Logger) *Lifecycle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Lifecycle{remover: remover, log: log}
}

// Handle is connected to both the control and the events channel.
func (l *Lifecycle) Handle(m event.Message) error {
	if m.Type != CmdDestroy && m.Type != EvtExpired {
		return nil
	}
	ref, ok := m.Data.(event.EntityRef)
	if !ok || ref.ID == 0 {
		l.log.Debug("removal message without entity", zap.Stringer("type", m.Type))
		return nil
	}
	l.remover.QueueRemoval(ecs.EntityID(ref.ID))
	l.queued++
	return nil
}

// Queued counts removals requested so far.
func (l *Lifecycle) Queued() int { return l.queued }
