//go:build !identdebug

package ident

import "strconv"

// ID is a 32-bit FNV-1a hash of a name. Build with the identdebug tag to
// keep the literal text instead.
type ID uint32

const (
	offset32 = 2166136261
	prime32  = 16777619
)

// Of hashes text into an ID. Identical text always yields the same ID;
// distinct texts are assumed not to collide.
func Of(text string) ID {
	h := uint32(offset32)
	for i := 0; i < len(text); i++ {
		h ^= uint32(text[i])
		h *= prime32
	}
	return ID(h)
}

func (id ID) String() string {
	return "0x" + strconv.FormatUint(uint64(id), 16)
}

// Debug reports whether IDs carry their literal text.
const Debug = false
