package component

import "github.com/tickforge/runtime/internal/core/ident"

// Scripted routes an entity's commands to a Lua handler table.
type Scripted struct {
	Handler string
}

func (*Scripted) TypeTag() ident.ID  { return ScriptedType }
func (*Scripted) TypeName() string   { return "Scripted" }
func (s *Scripted) Describe() string { return s.Handler }
