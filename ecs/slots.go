package ecs

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/rotisserie/eris"
)

// Slot is an index into a World's entity table, shared by every Pool as its
// addressing key.
type Slot int

// slotTable tracks which entity slots are in use. Slots in [0, capacity) are
// live unless they are on the free list. gens counts how often each slot has
// been released, so a Ref taken before a release no longer matches the slot.
type slotTable struct {
	capacity int
	count    int
	free     *bitset.BitSet
	gens     []uint32
	limit    int
}

func newSlotTable(limit int) slotTable {
	return slotTable{
		free:  bitset.New(0),
		limit: limit,
	}
}

func (s *slotTable) live(slot Slot) bool {
	return slot >= 0 && int(slot) < s.capacity && !s.free.Test(uint(slot))
}

func (s *slotTable) generation(slot Slot) uint32 {
	if slot < 0 || int(slot) >= len(s.gens) {
		return 0
	}
	return s.gens[slot]
}

// current reports whether ref names the entity that occupies its slot now.
func (s *slotTable) current(ref Ref) bool {
	return s.live(ref.Slot) && s.generation(ref.Slot) == ref.Gen
}

// next returns the slot the next allocation will use and whether it requires
// growing the capacity.
func (s *slotTable) next() (Slot, bool, error) {
	if idx, ok := s.free.NextSet(0); ok {
		return Slot(idx), false, nil
	}
	if s.limit > 0 && s.capacity >= s.limit {
		return 0, false, eris.Wrapf(ErrAllocationFailed, "entity limit %d reached", s.limit)
	}
	return Slot(s.capacity), true, nil
}

// take commits an allocation previously returned by next.
func (s *slotTable) take(slot Slot, grow bool) {
	if grow {
		s.capacity++
		for int(slot) >= len(s.gens) {
			s.gens = append(s.gens, 0)
		}
	} else {
		s.free.Clear(uint(slot))
	}
	s.count++
}

// release frees slot and reports whether the capacity shrank.
func (s *slotTable) release(slot Slot) bool {
	s.count--
	s.gens[slot]++
	if int(slot) == s.capacity-1 {
		s.capacity--
		return true
	}
	s.free.Set(uint(slot))
	return false
}

func (s *slotTable) freeCount() int {
	return int(s.free.Count())
}

func (s *slotTable) reset() {
	s.capacity = 0
	s.count = 0
	s.free.ClearAll()
	for i := range s.gens {
		s.gens[i]++
	}
}
