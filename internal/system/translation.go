package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/core/ecs"
	"github.com/tickforge/runtime/internal/core/event"
)

// TranslationProcessor moves entities by their local-frame Velocity, rotated
// into the world by their current Orientation.
type TranslationProcessor struct {
	ecs.BaseProcessor
	control *event.Channel
	conn    event.Connection
}

func NewTranslationProcessor(control *event.Channel) *TranslationProcessor {
	return &TranslationProcessor{
		BaseProcessor: ecs.NewBaseProcessor("translation",
			ecs.WithAll(component.PositionType, component.OrientationType, component.VelocityType)),
		control: control,
	}
}

func (p *TranslationProcessor) Initialize() error {
	p.conn = p.control.Connect(p.handle)
	return nil
}

func (p *TranslationProcessor) Cleanup() error {
	p.control.Disconnect(p.conn)
	return nil
}

// Thrust is along the local -Z axis.
func (p *TranslationProcessor) handle(m event.Message) error {
	if m.Type != CmdThrust {
		return nil
	}
	forEachTarget(p.Entities(), m, func(e *ecs.Entity) {
		ecs.Must[*component.Velocity](e).V = mgl64.Vec3{0, 0, -m.Magnitude}
	})
	return nil
}

func (p *TranslationProcessor) Update(dt time.Duration) error {
	secs := dt.Seconds()
	p.Entities().Each(func(e *ecs.Entity) {
		v := ecs.Must[*component.Velocity](e)
		if v.V.Len() == 0 {
			return
		}
		o := ecs.Must[*component.Orientation](e)
		pos := ecs.Must[*component.Position](e)
		pos.V = pos.V.Add(o.Q.Rotate(v.V).Mul(secs))
	})
	return nil
}
