package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/core/event"
)

func TestExpiryRemovesEntity(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.mgr.AddEntityProcessor(NewExpiryProcessor(r.events)))
	require.NoError(t, r.mgr.InitializeProcessors())
	life := NewLifecycle(r.mgr, zap.NewNop())
	r.events.Connect(life.Handle)
	var expired int
	r.events.Connect(func(m event.Message) error {
		if m.Type == EvtExpired {
			expired++
		}
		return nil
	})

	e := r.add("shot", &component.Lifetime{Remaining: 25 * time.Millisecond})
	keep := r.add("rock", &component.Position{})

	r.step()
	r.step()
	r.step() // lifetime runs out; the event waits in standby
	_, alive := r.mgr.Entity(e.ID())
	assert.True(t, alive)
	assert.Equal(t, 1, r.events.Pending())

	r.step() // event dispatched, removal flushed at the end of the tick
	_, alive = r.mgr.Entity(e.ID())
	assert.False(t, alive)
	_, alive = r.mgr.Entity(keep.ID())
	assert.True(t, alive)

	r.step()
	assert.Equal(t, 1, expired)
	assert.Equal(t, 1, life.Queued())
}

func TestDestroyCommand(t *testing.T) {
	r := newRig(t)
	life := NewLifecycle(r.mgr, zap.NewNop())
	r.control.Connect(life.Handle)
	e := r.add("target")

	r.control.Emit(event.New(CmdDestroy, 0))
	r.step()
	assert.Equal(t, 1, r.mgr.Len())
	assert.Zero(t, life.Queued())

	r.control.Emit(event.New(CmdDestroy, 0).With(event.EntityRef{ID: uint64(e.ID())}))
	r.step()
	assert.Zero(t, r.mgr.Len())
}
