package component

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tickforge/runtime/internal/core/ident"
)

// Position is the absolute world position of an entity.
type Position struct {
	V mgl64.Vec3
}

// Orientation is the absolute world orientation of an entity.
type Orientation struct {
	Q mgl64.Quat
}

// RelativePosition is the offset from the parent, expressed in the parent's
// frame. Only meaningful on entities with a parent.
type RelativePosition struct {
	V mgl64.Vec3
}

// RelativeOrientation is the rotation relative to the parent.
type RelativeOrientation struct {
	Q mgl64.Quat
}

func NewOrientation() *Orientation { return &Orientation{Q: mgl64.QuatIdent()} }

func NewRelativeOrientation() *RelativeOrientation {
	return &RelativeOrientation{Q: mgl64.QuatIdent()}
}

func (*Position) TypeTag() ident.ID            { return PositionType }
func (*Position) TypeName() string             { return "Position" }
func (*Orientation) TypeTag() ident.ID         { return OrientationType }
func (*Orientation) TypeName() string          { return "Orientation" }
func (*RelativePosition) TypeTag() ident.ID    { return RelativePositionType }
func (*RelativePosition) TypeName() string     { return "RelativePosition" }
func (*RelativeOrientation) TypeTag() ident.ID { return RelativeOrientationType }
func (*RelativeOrientation) TypeName() string  { return "RelativeOrientation" }

func (p *Position) Describe() string         { return describeVec(p.V) }
func (o *Orientation) Describe() string      { return describeQuat(o.Q) }
func (p *RelativePosition) Describe() string { return describeVec(p.V) }
func (o *RelativeOrientation) Describe() string {
	return describeQuat(o.Q)
}

func describeVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}

func describeQuat(q mgl64.Quat) string {
	return fmt.Sprintf("(w=%.3f, %.3f, %.3f, %.3f)", q.W, q.V[0], q.V[1], q.V[2])
}
