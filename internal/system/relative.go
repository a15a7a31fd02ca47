package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/core/ecs"
)

// RelativeTransformProcessor derives the absolute Position and Orientation of
// child entities from their parent's (already updated) absolute transform and
// their own RelativePosition / RelativeOrientation. Children without either
// relative component keep their own transform. Register it after the
// processors that move roots.
type RelativeTransformProcessor struct {
	ecs.Hierarchy
}

func NewRelativeTransformProcessor() *RelativeTransformProcessor {
	return &RelativeTransformProcessor{
		Hierarchy: ecs.NewHierarchy("relative-transform",
			ecs.WithAll(component.PositionType, component.OrientationType)),
	}
}

func (p *RelativeTransformProcessor) Update(time.Duration) error {
	return p.ForEachChild(func(e, parent *ecs.Entity) error {
		if parent == nil {
			return nil
		}
		rp := ecs.Find[*component.RelativePosition](e)
		ro := ecs.Find[*component.RelativeOrientation](e)
		if !rp.IsPresent() && !ro.IsPresent() {
			return nil
		}
		pq := ecs.Must[*component.Orientation](parent).Q
		ppos := ecs.Must[*component.Position](parent).V

		local := mgl64.QuatIdent()
		if r, ok := ro.Get(); ok {
			local = r.Q
		}
		var offset mgl64.Vec3
		if r, ok := rp.Get(); ok {
			offset = r.V
		}
		ecs.Must[*component.Orientation](e).Q = pq.Mul(local).Normalize()
		ecs.Must[*component.Position](e).V = ppos.Add(pq.Rotate(offset))
		return nil
	})
}
