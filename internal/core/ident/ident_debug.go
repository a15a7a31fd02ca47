//go:build identdebug

package ident

// ID is the literal name in diagnostic builds.
type ID string

// Of returns text unchanged.
func Of(text string) ID { return ID(text) }

func (id ID) String() string { return string(id) }

// Debug reports whether IDs carry their literal text.
const Debug = true
