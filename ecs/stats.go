package ecs

// WorldStats is a snapshot of the slot table and pools of a World.
type WorldStats struct {
	Name               string
	Capacity           int
	EntityCount        int
	FreeSlots          int
	ComponentTypeCount int
	Components         []ComponentStats
}

// ComponentStats describes one registered component type.
type ComponentStats struct {
	Name   string
	Active int
	Len    int
}

// CollectStats gathers statistics in component registration order.
func (w *World) CollectStats() *WorldStats {
	stats := &WorldStats{
		Name:               w.name,
		Capacity:           w.slots.capacity,
		EntityCount:        w.slots.count,
		FreeSlots:          w.slots.freeCount(),
		ComponentTypeCount: len(w.order),
		Components:         make([]ComponentStats, 0, len(w.order)),
	}

	for _, pool := range w.order {
		stats.Components = append(stats.Components, ComponentStats{
			Name:   pool.Type().String(),
			Active: pool.Active(),
			Len:    pool.Len(),
		})
	}

	return stats
}
