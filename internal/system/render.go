package system

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/tickforge/runtime/internal/component"
	"github.com/tickforge/runtime/internal/core/ecs"
)

// DrawItem is one renderable entity as seen at draw time.
type DrawItem struct {
	ID          ecs.EntityID
	Name        string
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Renderer consumes one frame worth of draw items. Items arrive ordered by
// entity ID.
type Renderer interface {
	Render(frame uint64, items []DrawItem) error
}

// RenderProcessor collects Renderable entities on Draw and hands them to a
// Renderer. It does nothing on Update.
type RenderProcessor struct {
	ecs.BaseProcessor
	renderer Renderer
	frame    uint64
	items    []DrawItem
}

func NewRenderProcessor(r Renderer) *RenderProcessor {
	return &RenderProcessor{
		BaseProcessor: ecs.NewBaseProcessor("render",
			ecs.WithAll(component.RenderableType, component.PositionType)),
		renderer: r,
	}
}

func (p *RenderProcessor) Draw() error {
	p.items = p.items[:0]
	for e := range p.Entities().All() {
		item := DrawItem{
			ID:          e.ID(),
			Name:        e.Name(),
			Position:    ecs.Must[*component.Position](e).V,
			Orientation: mgl64.QuatIdent(),
		}
		if o, ok := ecs.Find[*component.Orientation](e).Get(); ok {
			item.Orientation = o.Q
		}
		p.items = append(p.items, item)
	}
	slices.SortFunc(p.items, func(a, b DrawItem) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	p.frame++
	return p.renderer.Render(p.frame, p.items)
}

// Frames counts Draw calls.
func (p *RenderProcessor) Frames() uint64 { return p.frame }

// LogRenderer writes every Nth frame to a zap logger at debug level.
type LogRenderer struct {
	log   *zap.Logger
	every uint64
}

func NewLogRenderer(log *zap.Logger, every uint64) *LogRenderer {
	if log == nil {
		log = zap.NewNop()
	}
	if every == 0 {
		every = 1
	}
	return &LogRenderer{log: log, every: every}
}

func (r *LogRenderer) Render(frame uint64, items []DrawItem) error {
	if frame%r.every != 0 {
		return nil
	}
	for _, it := range items {
		r.log.Debug("draw",
			zap.Uint64("frame", frame),
			zap.Uint64("entity", uint64(it.ID)),
			zap.String("name", it.Name),
			zap.Float64s("pos", it.Position[:]),
		)
	}
	return nil
}
