package ecs

import (
	"iter"
	"reflect"
)

// Each returns an iterator over every live entity slot with an active T, in
// ascending slot order.
func Each[T any, P ComponentPtr[T]](w *World) iter.Seq2[Slot, *T] {
	return func(yield func(Slot, *T) bool) {
		pool := lookupPool[T, P](w)
		if pool == nil {
			return
		}
		for slot := Slot(0); int(slot) < pool.Len(); slot++ {
			if !pool.Has(slot) || !w.slots.live(slot) {
				continue
			}
			if !yield(slot, pool.At(slot)) {
				return
			}
		}
	}
}

// Count returns the number of active T in the World.
func Count[T any](w *World) int {
	pool := w.poolFor(reflect.TypeFor[T]())
	if pool == nil {
		return 0
	}
	return pool.Active()
}
