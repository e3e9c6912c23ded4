package ecs_test

import (
	"testing"

	"github.com/plus3/divvy/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEach(t *testing.T) {
	w := newTestWorld()
	entities := make([]*ecs.Entity, 5)
	for i := range entities {
		entities[i] = mustEntity(w)
	}
	for _, i := range []int{4, 0, 2} {
		_, err := ecs.Add(entities[i], Counter{N: i * 10})
		require.NoError(t, err)
	}

	var slots []ecs.Slot
	var values []int
	for slot, c := range ecs.Each[Counter](w) {
		slots = append(slots, slot)
		values = append(values, c.N)
	}

	assert.Equal(t, []ecs.Slot{0, 2, 4}, slots)
	assert.Equal(t, []int{0, 20, 40}, values)
	assert.Equal(t, 3, ecs.Count[Counter](w))
}

func TestEachSkipsReleased(t *testing.T) {
	w := newTestWorld()
	a := mustEntity(w)
	b := mustEntity(w)
	mustEntity(w)
	for _, e := range []*ecs.Entity{a, b} {
		_, err := ecs.Add(e, Transform{})
		require.NoError(t, err)
	}

	a.Release()

	count := 0
	for slot := range ecs.Each[Transform](w) {
		assert.Equal(t, b.Slot(), slot)
		count++
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, ecs.Count[Transform](w))
}

func TestEachBreak(t *testing.T) {
	w := newTestWorld()
	for range 10 {
		e := mustEntity(w)
		_, err := ecs.Add(e, Counter{})
		require.NoError(t, err)
	}

	seen := 0
	for range ecs.Each[Counter](w) {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestEachUnregistered(t *testing.T) {
	w := newTestWorld()
	mustEntity(w)

	for range ecs.Each[Tracer](w) {
		t.Fatal("unexpected component")
	}
	assert.Equal(t, 0, ecs.Count[Tracer](w))
}
