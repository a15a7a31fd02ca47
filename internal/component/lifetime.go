package component

import (
	"time"

	"github.com/tickforge/runtime/internal/core/ident"
)

// Lifetime is the simulated time an entity has left before it expires.
type Lifetime struct {
	Remaining time.Duration
	Expired   bool
}

func (*Lifetime) TypeTag() ident.ID  { return LifetimeType }
func (*Lifetime) TypeName() string   { return "Lifetime" }
func (l *Lifetime) Describe() string { return l.Remaining.String() }
