//go:build !identdebug

package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfKnownVectors(t *testing.T) {
	tests := []struct {
		text string
		want ID
	}{
		{"", 0x811c9dc5},
		{"a", 0xe40c292c},
		{"foobar", 0xbf9cf968},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Of(tt.text), "Of(%q)", tt.text)
	}
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "0x811c9dc5", Of("").String())
	assert.False(t, Debug)
}
