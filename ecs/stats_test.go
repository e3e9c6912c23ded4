package ecs_test

import (
	"testing"

	"github.com/plus3/divvy/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStats(t *testing.T) {
	w := newTestWorld()
	a := mustEntity(w)
	b := mustEntity(w)
	mustEntity(w)

	_, err := ecs.Add(a, Counter{})
	require.NoError(t, err)
	_, err = ecs.Add(b, Counter{})
	require.NoError(t, err)
	_, err = ecs.Add(b, Nametag{Name: "b"})
	require.NoError(t, err)
	a.Release()

	stats := w.CollectStats()

	assert.Equal(t, w.Name(), stats.Name)
	assert.Equal(t, 3, stats.Capacity)
	assert.Equal(t, 2, stats.EntityCount)
	assert.Equal(t, 1, stats.FreeSlots)
	assert.Equal(t, 4, stats.ComponentTypeCount)
	require.Len(t, stats.Components, 4)

	assert.Equal(t, ecs.ComponentStats{Name: "ecs_test.Counter", Active: 1, Len: 3}, stats.Components[0])
	assert.Equal(t, ecs.ComponentStats{Name: "ecs_test.Transform", Active: 0, Len: 3}, stats.Components[1])
	assert.Equal(t, ecs.ComponentStats{Name: "ecs_test.Nametag", Active: 1, Len: 3}, stats.Components[2])
	assert.Equal(t, ecs.ComponentStats{Name: "ecs_test.Inventory", Active: 0, Len: 3}, stats.Components[3])
}

func TestCollectStatsEmpty(t *testing.T) {
	stats := ecs.NewWorld().CollectStats()

	assert.Equal(t, 0, stats.Capacity)
	assert.Equal(t, 0, stats.EntityCount)
	assert.Empty(t, stats.Components)
}
