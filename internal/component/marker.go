package component

import "github.com/tickforge/runtime/internal/core/ident"

// Renderable marks entities the render pass draws.
type Renderable struct{}

// Controllable marks entities steered by control commands.
type Controllable struct{}

func (Renderable) TypeTag() ident.ID   { return RenderableType }
func (Renderable) TypeName() string    { return "Renderable" }
func (Controllable) TypeTag() ident.ID { return ControllableType }
func (Controllable) TypeName() string  { return "Controllable" }
