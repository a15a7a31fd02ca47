package component

import "github.com/tickforge/runtime/internal/core/ident"

// Type tags, hashed once at init.
var (
	PositionType            = ident.Of("Position")
	OrientationType         = ident.Of("Orientation")
	RelativePositionType    = ident.Of("RelativePosition")
	RelativeOrientationType = ident.Of("RelativeOrientation")
	VelocityType            = ident.Of("Velocity")
	AngularVelocityType     = ident.Of("AngularVelocity")
	RenderableType          = ident.Of("Renderable")
	ControllableType        = ident.Of("Controllable")
	LifetimeType            = ident.Of("Lifetime")
	ScriptedType            = ident.Of("Scripted")
)

// Names lists every component type name, for registering with an
// ident.Table.
func Names() []string {
	return []string{
		"Position", "Orientation", "RelativePosition", "RelativeOrientation",
		"Velocity", "AngularVelocity", "Renderable", "Controllable",
		"Lifetime", "Scripted",
	}
}

// Describer is implemented by components that can render their state for
// inspection tools.
type Describer interface {
	Describe() string
}
