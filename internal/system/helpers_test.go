package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tickforge/runtime/internal/core/ecs"
	"github.com/tickforge/runtime/internal/core/event"
)

const tick = 10 * time.Millisecond

// rig is a minimal world: a manager and the three standard channels, stepped
// by hand in loop order.
type rig struct {
	t       *testing.T
	mgr     *ecs.Manager
	hub     *event.Hub
	input   *event.Channel
	control *event.Channel
	events  *event.Channel
}

func newRig(t *testing.T, procs ...ecs.Processor) *rig {
	t.Helper()
	r := &rig{
		t:       t,
		mgr:     ecs.NewManager(zap.NewNop()),
		hub:     event.NewHub(),
		input:   event.NewChannel("input", event.KindCommand),
		control: event.NewChannel("control", event.KindCommand),
		events:  event.NewChannel("events", event.KindEvent),
	}
	for _, ch := range []*event.Channel{r.input, r.control, r.events} {
		require.NoError(t, r.hub.Add(ch))
	}
	for _, p := range procs {
		require.NoError(t, r.mgr.AddEntityProcessor(p))
	}
	return r
}

func (r *rig) add(name string, cs ...ecs.Component) *ecs.Entity {
	r.t.Helper()
	e := ecs.NewEntity(name)
	for _, c := range cs {
		require.NoError(r.t, e.AddComponent(c))
	}
	_, err := r.mgr.AddEntity(e)
	require.NoError(r.t, err)
	return e
}

func (r *rig) step() {
	r.t.Helper()
	r.hub.ShiftAll()
	require.NoError(r.t, r.hub.DispatchAll())
	require.NoError(r.t, r.mgr.Update(tick))
	r.mgr.FlushRemovals()
}
