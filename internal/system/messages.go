package system

import (
	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/core/ecs"
	"github.com/tickforge/runtime/internal/core/event"
	"github.com/tickforge/runtime/internal/core/ident"
)

// Message types.
var (
	// MsgKey carries a raw event.Key from the platform layer.
	MsgKey = ident.Of("Key")
	// CmdThrust sets forward speed (magnitude, units per second).
	CmdThrust = ident.Of("Thrust")
	// CmdTurn sets yaw rate (magnitude, radians per second).
	CmdTurn = ident.Of("Turn")
	// CmdDestroy removes the entity named by its EntityRef payload.
	CmdDestroy = ident.Of("Destroy")
	// CmdPulse has no built-in consumer; scripts react to it.
	CmdPulse = ident.Of("Pulse")
	// EvtExpired reports an entity whose Lifetime ran out.
	EvtExpired = ident.Of("EntityExpired")
)

// MessageNames lists the built-in message type names.
func MessageNames() []string {
	return []string{"Key", "Thrust", "Turn", "Destroy", "Pulse", "EntityExpired"}
}

// forEachTarget calls fn for the entity named by m's EntityRef payload, or
// for every Controllable entity in set when m has no target.
func forEachTarget(set *ecs.EntitySet, m event.Message, fn func(*ecs.Entity)) {
	if ref, ok := m.Data.(event.EntityRef); ok {
		if e, found := set.Get(ecs.EntityID(ref.ID)); found {
			fn(e)
		}
		return
	}
	set.Each(func(e *ecs.Entity) {
		if e.HasComponent(component.ControllableType) {
			fn(e)
		}
	})
}
