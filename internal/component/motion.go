package component

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tickforge/runtime/internal/core/ident"
)

// Velocity is a linear velocity in the entity's local frame, units per
// second.
type Velocity struct {
	V mgl64.Vec3
}

// AngularVelocity is a rotation rate in radians per second about each local
// axis.
type AngularVelocity struct {
	Rate mgl64.Vec3
}

func (*Velocity) TypeTag() ident.ID        { return VelocityType }
func (*Velocity) TypeName() string         { return "Velocity" }
func (*AngularVelocity) TypeTag() ident.ID { return AngularVelocityType }
func (*AngularVelocity) TypeName() string  { return "AngularVelocity" }

func (v *Velocity) Describe() string        { return describeVec(v.V) }
func (a *AngularVelocity) Describe() string { return describeVec(a.Rate) }
