package ecs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddThenHasComponent(t *testing.T) {
	e := NewEntity("ship")
	require.NoError(t, e.AddComponent(&alpha{Value: 1}))
	assert.True(t, e.HasComponent(tagAlpha))
	assert.True(t, e.HasComponentOf(&alpha{}))

	require.NoError(t, e.RemoveComponent(tagAlpha))
	assert.False(t, e.HasComponent(tagAlpha))
}

func TestAddSameTypeReplaces(t *testing.T) {
	e := NewEntity("ship")
	first := &alpha{Value: 1}
	second := &alpha{Value: 2}
	require.NoError(t, e.AddComponent(first))
	require.NoError(t, e.AddComponent(&beta{Label: "b"}))
	require.NoError(t, e.AddComponent(second))

	assert.Equal(t, 2, e.Len())
	c, err := e.Component(tagAlpha)
	require.NoError(t, err)
	assert.Same(t, second, c)
	// Replacement keeps the original slot.
	assert.Equal(t, tagAlpha, e.Components()[0].TypeTag())
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	e := NewEntity("ship")
	assert.NoError(t, e.RemoveComponent(tagBeta))
	assert.NoError(t, e.RemoveComponentOf(&beta{}))
}

func TestRemovePreservesOrder(t *testing.T) {
	e := newEntityWith("ship", &alpha{}, &beta{}, marker{})
	require.NoError(t, e.RemoveComponent(tagAlpha))

	cs := e.Components()
	require.Len(t, cs, 2)
	assert.Equal(t, tagBeta, cs[0].TypeTag())
	assert.Equal(t, tagMarker, cs[1].TypeTag())
	assert.True(t, e.HasComponent(tagMarker))
}

func TestComponentNotFound(t *testing.T) {
	e := NewEntity("ship")
	_, err := e.Component(tagAlpha)
	assert.ErrorIs(t, err, ErrComponentNotFound)

	var ee *EntityError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "ship", ee.Name)
}

func TestFinalizedRejectsMutation(t *testing.T) {
	e := newEntityWith("ship", &alpha{Value: 7})
	e.Finalize()
	e.Finalize()
	assert.True(t, e.Finalized())

	assert.ErrorIs(t, e.AddComponent(&beta{}), ErrEntityFinalized)
	assert.ErrorIs(t, e.RemoveComponent(tagAlpha), ErrEntityFinalized)
	assert.ErrorIs(t, e.RemoveComponentOf(&alpha{}), ErrEntityFinalized)
	assert.ErrorIs(t, e.SetParent(NewEntity("other")), ErrEntityFinalized)

	// Queries stay available.
	assert.True(t, e.HasComponent(tagAlpha))
	c, err := e.Component(tagAlpha)
	require.NoError(t, err)
	assert.Equal(t, 7, c.(*alpha).Value)
}

func TestNilComponentRejected(t *testing.T) {
	e := NewEntity("ship")
	assert.ErrorIs(t, e.AddComponent(nil), ErrInvalidComponent)

	var typedNil *alpha
	assert.ErrorIs(t, e.AddComponent(typedNil), ErrInvalidComponent)
	assert.ErrorIs(t, e.RemoveComponentOf(nil), ErrInvalidComponent)
	assert.False(t, e.HasComponentOf(nil))
}

func TestSetParentRejectsCycle(t *testing.T) {
	a := NewEntity("a")
	b := NewEntity("b")
	c := NewEntity("c")
	require.NoError(t, b.SetParent(a))
	require.NoError(t, c.SetParent(b))

	assert.ErrorIs(t, a.SetParent(c), ErrHierarchyCycle)
	assert.ErrorIs(t, a.SetParent(a), ErrHierarchyCycle)
	assert.Nil(t, a.Parent())

	require.NoError(t, c.SetParent(nil))
	assert.Nil(t, c.Parent())
}

func TestGenericAccessors(t *testing.T) {
	e := newEntityWith("ship", &alpha{Value: 3})

	a, err := Get[*alpha](e)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Value)
	assert.True(t, Has[*alpha](e))

	_, err = Get[*beta](e)
	assert.ErrorIs(t, err, ErrComponentNotFound)
	assert.Panics(t, func() { Must[*beta](e) })

	opt := Find[*beta](e)
	assert.False(t, opt.IsPresent())
	fallback := &beta{Label: "default"}
	assert.Same(t, fallback, opt.OrElse(fallback))

	n := 0
	for v := range Find[*alpha](e).All() {
		assert.Equal(t, 3, v.Value)
		n++
	}
	assert.Equal(t, 1, n)
	for range opt.All() {
		t.Fatal("absent option yielded a value")
	}
}
