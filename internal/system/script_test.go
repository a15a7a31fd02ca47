package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/core/event"
	"github.com/tickforge/runtime/internal/core/ident"
	"github.com/tickforge/runtime/internal/scripting"
)

const beaconLua = `
pulses = 0
ticks = 0
function beacon(ctx)
  if ctx.command == "Pulse" then
    pulses = pulses + 1
    emit("ScriptEvent", ctx.magnitude * 2, ctx.entity)
    emit("NoSuchEvent")
  end
end
function broken(ctx)
  error("kaboom")
end
function on_tick(dt)
  ticks = ticks + 1
end
`

func newScriptRig(t *testing.T) (*rig, *ScriptProcessor, *scripting.Engine, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	lua, err := scripting.NewEngine("", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(lua.Close)
	require.NoError(t, lua.DoString(beaconLua))

	names := ident.NewTable()
	require.NoError(t, names.RegisterAll(append(MessageNames(), "ScriptEvent")...))

	r := newRig(t)
	sp := NewScriptProcessor(lua, names, r.control, r.events, zap.New(core))
	require.NoError(t, r.mgr.AddEntityProcessor(sp))
	require.NoError(t, r.mgr.InitializeProcessors())
	return r, sp, lua, logs
}

func TestScriptHandlesCommandsAndEmits(t *testing.T) {
	r, _, lua, logs := newScriptRig(t)
	e := r.add("beacon", &component.Scripted{Handler: "beacon"})
	r.add("silent", &component.Scripted{Handler: "missing"})

	var got []event.Message
	r.events.Connect(func(m event.Message) error {
		got = append(got, m)
		return nil
	})

	r.control.Emit(event.New(CmdPulse, 1.5))
	r.step()
	r.step()

	require.Len(t, got, 1)
	assert.Equal(t, ident.Of("ScriptEvent"), got[0].Type)
	assert.Equal(t, 3.0, got[0].Magnitude)
	assert.Equal(t, event.EntityRef{ID: uint64(e.ID())}, got[0].Data)
	assert.Equal(t, 1, logs.FilterMessage("script emitted unknown event").Len())

	require.NoError(t, lua.DoString(`assert(pulses == 1 and ticks == 2)`))
}

func TestScriptErrorStopsDispatch(t *testing.T) {
	r, _, _, _ := newScriptRig(t)
	r.add("bad", &component.Scripted{Handler: "broken"})

	r.control.Emit(event.New(CmdPulse, 1))
	r.hub.ShiftAll()
	err := r.hub.DispatchAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestScriptCleanupDetaches(t *testing.T) {
	r, _, _, _ := newScriptRig(t)
	assert.Equal(t, 1, r.control.Handlers())
	require.NoError(t, r.mgr.CleanupProcessors())
	assert.Equal(t, 0, r.control.Handlers())
}
