package ecs

import "reflect"

// componentPool is the type-erased view of a Pool the World stores per
// registered component type.
type componentPool interface {
	Type() reflect.Type
	Len() int
	Active() int
	Has(index Slot) bool
	Remove(index Slot) error
	Resize(size int) error
	Update()

	updateWhere(live func(Slot) bool)
	get(index Slot) any
	cloneFrom(dst Slot, src componentPool, srcIndex Slot) (any, error)
	setLimit(limit int)
}
