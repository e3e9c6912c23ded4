package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tick struct {
	Count int
}

func (t *tick) Update()         { t.Count++ }
func (t *tick) Clone(src *tick) { t.Count = src.Count }

type marker struct {
	Owner
	Label string
}

func (m *marker) Update()           {}
func (m *marker) Clone(src *marker) { m.Label = src.Label }

func TestPoolAddAtHas(t *testing.T) {
	p, err := NewPool[tick](4)
	require.NoError(t, err)

	assert.Equal(t, 4, p.Len())
	assert.Equal(t, 0, p.Active())
	assert.False(t, p.Has(2))
	assert.NotNil(t, p.At(2))

	inst, err := p.Add(2)
	require.NoError(t, err)
	inst.Count = 5

	assert.True(t, p.Has(2))
	assert.Same(t, inst, p.At(2))
	assert.Equal(t, 1, p.Active())

	_, err = p.Add(4)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = p.Add(-1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Nil(t, p.At(4))
	assert.False(t, p.Has(-1))
}

func TestPoolRemove(t *testing.T) {
	p, err := NewPool[tick](2)
	require.NoError(t, err)

	inst, err := p.Add(1)
	require.NoError(t, err)
	inst.Count = 3

	require.NoError(t, p.Remove(1))
	assert.False(t, p.Has(1))
	assert.Equal(t, 0, p.At(1).Count)

	require.NoError(t, p.Remove(1))
	assert.ErrorIs(t, p.Remove(2), ErrOutOfBounds)
}

func TestPoolResize(t *testing.T) {
	p, err := NewPool[tick](0)
	require.NoError(t, err)

	require.NoError(t, p.Resize(130))
	assert.Equal(t, 130, p.Len())
	assert.Len(t, p.blocks, 3)

	inst, err := p.Add(129)
	require.NoError(t, err)
	inst.Count = 9
	first, err := p.Add(0)
	require.NoError(t, err)

	require.NoError(t, p.Resize(64))
	assert.Equal(t, 64, p.Len())
	assert.Len(t, p.blocks, 1)
	assert.Equal(t, 1, p.Active())
	assert.Same(t, first, p.At(0))

	require.NoError(t, p.Resize(130))
	assert.False(t, p.Has(129))
	assert.Equal(t, 0, p.At(129).Count)

	assert.ErrorIs(t, p.Resize(-1), ErrAllocationFailed)
}

func TestPoolLimit(t *testing.T) {
	p, err := NewPool[tick](0)
	require.NoError(t, err)
	p.setLimit(10)

	require.NoError(t, p.Resize(10))
	assert.ErrorIs(t, p.Resize(11), ErrAllocationFailed)
	assert.Equal(t, 10, p.Len())
}

func TestPoolAddressStability(t *testing.T) {
	p, err := NewPool[tick](1)
	require.NoError(t, err)

	inst, err := p.Add(0)
	require.NoError(t, err)

	for size := 2; size < 1000; size *= 2 {
		require.NoError(t, p.Resize(size))
	}
	assert.Same(t, inst, p.At(0))
}

func TestPoolUpdate(t *testing.T) {
	p, err := NewPool[tick](100)
	require.NoError(t, err)

	for _, i := range []Slot{3, 70, 99} {
		_, err := p.Add(i)
		require.NoError(t, err)
	}

	p.Update()
	p.Update()

	assert.Equal(t, 2, p.At(3).Count)
	assert.Equal(t, 2, p.At(70).Count)
	assert.Equal(t, 2, p.At(99).Count)
	assert.Equal(t, 0, p.At(4).Count)

	p.updateWhere(func(s Slot) bool { return s != 70 })
	assert.Equal(t, 3, p.At(3).Count)
	assert.Equal(t, 2, p.At(70).Count)
}

func TestPoolCloneFrom(t *testing.T) {
	src, err := NewPool[marker](2)
	require.NoError(t, err)
	dst, err := NewPool[marker](3)
	require.NoError(t, err)

	inst, err := src.Add(1)
	require.NoError(t, err)
	inst.Label = "hello"

	cloned, err := dst.cloneFrom(2, src, 1)
	require.NoError(t, err)

	got := dst.At(2)
	assert.Same(t, got, cloned)
	assert.True(t, dst.Has(2))
	assert.Equal(t, "hello", got.Label)

	w := NewWorld()
	ref := Ref{WorldID: w.ID(), Slot: 2, Gen: 3}
	attach(cloned, w, ref)
	assert.Equal(t, ref, got.Entity())
	assert.Same(t, w, got.World())

	_, err = dst.cloneFrom(0, src, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	other, err := NewPool[tick](2)
	require.NoError(t, err)
	_, err = dst.cloneFrom(0, other, 0)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestPoolGet(t *testing.T) {
	p, err := NewPool[marker](1)
	require.NoError(t, err)

	var pool componentPool = p
	assert.Nil(t, pool.get(0))

	_, err = p.Add(0)
	require.NoError(t, err)
	assert.IsType(t, &marker{}, pool.get(0))
}
