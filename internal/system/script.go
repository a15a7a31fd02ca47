package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/core/ecs"
	"github.com/tickforge/runtime/internal/core/event"
	"github.com/tickforge/runtime/internal/core/ident"
	"github.com/tickforge/runtime/internal/scripting"
)

// ScriptProcessor forwards control commands to the Lua handler named by each
// Scripted entity, and lets scripts raise events with emit(). Events whose
// name is not registered in the identifier table are dropped with a warning.
type ScriptProcessor struct {
	ecs.BaseProcessor
	lua     *scripting.Engine
	names   *ident.Table
	control *event.Channel
	events  *event.Channel
	log     *zap.Logger
	conn    event.Connection
}

func NewScriptProcessor(lua *scripting.Engine, names *ident.Table, control, events *event.Channel, log *zap.Logger) *ScriptProcessor {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScriptProcessor{
		BaseProcessor: ecs.NewBaseProcessor("script", ecs.WithAll(component.ScriptedType)),
		lua:           lua,
		names:         names,
		control:       control,
		events:        events,
		log:           log,
	}
}

func (p *ScriptProcessor) Initialize() error {
	p.lua.SetEmitter(p.emit)
	p.conn = p.control.Connect(p.handle)
	return nil
}

func (p *ScriptProcessor) Cleanup() error {
	p.control.Disconnect(p.conn)
	p.lua.SetEmitter(nil)
	return nil
}

func (p *ScriptProcessor) handle(m event.Message) error {
	command := p.names.Name(m.Type)
	var target ecs.EntityID
	if ref, ok := m.Data.(event.EntityRef); ok {
		target = ecs.EntityID(ref.ID)
	}
	for e := range p.Entities().All() {
		if !target.IsZero() && e.ID() != target {
			continue
		}
		handler := ecs.Must[*component.Scripted](e).Handler
		if handler == "" || !p.lua.HasFunction(handler) {
			continue
		}
		if err := p.lua.CallHandler(handler, scripting.CommandContext{
			Command:   command,
			Magnitude: m.Magnitude,
			Entity:    uint64(e.ID()),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p *ScriptProcessor) emit(name string, magnitude float64, entity uint64) {
	id := ident.Of(name)
	if _, ok := p.names.Lookup(id); !ok {
		p.log.Warn("script emitted unknown event", zap.String("name", name))
		return
	}
	m := event.New(id, magnitude)
	if entity != 0 {
		m = m.With(event.EntityRef{ID: entity})
	}
	p.events.Emit(m)
}

func (p *ScriptProcessor) Update(dt time.Duration) error {
	return p.lua.Tick(dt)
}
