package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/core/ecs"
	"github.com/tickforge/runtime/internal/core/event"
)

// RotationProcessor integrates AngularVelocity into Orientation. Register it
// before TranslationProcessor, which moves along the updated orientation.
type RotationProcessor struct {
	ecs.BaseProcessor
	control *event.Channel
	conn    event.Connection
}

func NewRotationProcessor(control *event.Channel) *RotationProcessor {
	return &RotationProcessor{
		BaseProcessor: ecs.NewBaseProcessor("rotation",
			ecs.WithAll(component.OrientationType, component.AngularVelocityType)),
		control: control,
	}
}

func (p *RotationProcessor) Initialize() error {
	p.conn = p.control.Connect(p.handle)
	return nil
}

func (p *RotationProcessor) Cleanup() error {
	p.control.Disconnect(p.conn)
	return nil
}

func (p *RotationProcessor) handle(m event.Message) error {
	if m.Type != CmdTurn {
		return nil
	}
	forEachTarget(p.Entities(), m, func(e *ecs.Entity) {
		av := ecs.Must[*component.AngularVelocity](e)
		av.Rate = mgl64.Vec3{0, m.Magnitude, 0}
	})
	return nil
}

func (p *RotationProcessor) Update(dt time.Duration) error {
	secs := dt.Seconds()
	p.Entities().Each(func(e *ecs.Entity) {
		av := ecs.Must[*component.AngularVelocity](e)
		rate := av.Rate.Len()
		if rate == 0 {
			return
		}
		o := ecs.Must[*component.Orientation](e)
		step := mgl64.QuatRotate(rate*secs, av.Rate.Mul(1/rate))
		o.Q = o.Q.Mul(step).Normalize()
	})
	return nil
}
