package event

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tickforge/runtime/internal/core/ident"
)

// Message is the shape shared by Commands (intent flowing into a subsystem)
// and Events (notifications flowing out of one).
type Message struct {
	Type      ident.ID
	Magnitude float64
	Data      Payload
}

func New(typ ident.ID, magnitude float64) Message {
	return Message{Type: typ, Magnitude: magnitude}
}

// With returns a copy of m carrying data.
func (m Message) With(data Payload) Message {
	m.Data = data
	return m
}

// PayloadKind enumerates the payload variants.
type PayloadKind uint8

const (
	KindNone PayloadKind = iota
	KindEntity
	KindVector
	KindText
	KindKey
)

func (k PayloadKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindEntity:
		return "entity"
	case KindVector:
		return "vector"
	case KindText:
		return "text"
	case KindKey:
		return "key"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Payload is a closed union; only the types in this file implement it.
type Payload interface {
	Kind() PayloadKind
	fmt.Stringer
	payload()
}

// EntityRef refers to an entity by id.
type EntityRef struct{ ID uint64 }

// Vector carries a 3D vector.
type Vector struct{ V mgl64.Vec3 }

// Text carries free-form text.
type Text struct{ S string }

// Key carries a raw key transition from the platform layer.
type Key struct {
	Name    string
	Pressed bool
}

func (EntityRef) Kind() PayloadKind { return KindEntity }
func (Vector) Kind() PayloadKind    { return KindVector }
func (Text) Kind() PayloadKind      { return KindText }
func (Key) Kind() PayloadKind       { return KindKey }

func (p EntityRef) String() string { return fmt.Sprintf("entity(%d)", p.ID) }
func (p Vector) String() string    { return fmt.Sprintf("vec(%g, %g, %g)", p.V[0], p.V[1], p.V[2]) }
func (p Text) String() string      { return fmt.Sprintf("%q", p.S) }
func (p Key) String() string {
	if p.Pressed {
		return "key(" + p.Name + " down)"
	}
	return "key(" + p.Name + " up)"
}

func (EntityRef) payload() {}
func (Vector) payload()    {}
func (Text) payload()      {}
func (Key) payload()       {}

// KindOf returns the kind of m's payload, KindNone when there is none.
func KindOf(m Message) PayloadKind {
	if m.Data == nil {
		return KindNone
	}
	return m.Data.Kind()
}

// Describe renders m for diagnostics, resolving the type name through names
// when it is known.
func Describe(m Message, names *ident.Table) string {
	s := fmt.Sprintf("%s(%g)", names.Name(m.Type), m.Magnitude)
	if m.Data != nil {
		s += " " + m.Data.String()
	}
	return s
}
