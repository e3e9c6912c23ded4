package ecs

import (
	"reflect"
	"weak"

	"github.com/rotisserie/eris"
)

// Component is the capability set every component type must provide through its
// pointer receiver. The zero value of T is the default placeholder a Pool
// allocates before a slot is activated.
type Component[T any] interface {
	// Update is called once per World.Update pass for every active instance.
	// Panics are not recovered by the World.
	Update()

	// Clone overwrites the receiver with the state of src.
	Clone(src *T)
}

// ComponentPtr constrains P to be *T implementing Component[T]. It lets the
// generic API infer the pointer type from the value type, so callers write
// Register[Counter](w) rather than Register[Counter, *Counter](w).
type ComponentPtr[T any] interface {
	*T
	Component[T]
}

// Ref identifies the entity a component belongs to. It is stored by value so
// it stays meaningful after the owning handle is moved or pools grow. Gen
// tells a released and reused slot apart from the entity the Ref was taken of.
type Ref struct {
	WorldID uint64
	Slot    Slot
	Gen     uint32
}

// Owner can be embedded in a component to receive the back-reference to the
// entity it is attached to and the World holding it.
type Owner struct {
	ref   Ref
	world weak.Pointer[World]
}

// Entity returns the reference to the entity this component is attached to.
func (o *Owner) Entity() Ref {
	return o.ref
}

// World returns the World the component is stored in, or nil once that World
// has been collected.
func (o *Owner) World() *World {
	return o.world.Value()
}

func (o *Owner) setOwner(w *World, ref Ref) {
	o.ref = ref
	o.world = weak.Make(w)
}

type owned interface {
	setOwner(*World, Ref)
}

// Sibling returns the component of type T attached to the same entity as ref.
func Sibling[T any, P ComponentPtr[T]](w *World, ref Ref) (*T, error) {
	if w == nil || ref.WorldID != w.id {
		return nil, eris.Wrapf(ErrInvalidEntity, "ref %v does not belong to this world", ref)
	}
	if !w.slots.current(ref) {
		return nil, eris.Wrapf(ErrInvalidEntity, "ref %v is stale", ref)
	}
	return getAt[T, P](w, ref.Slot)
}

// HasSibling reports whether the entity referenced by ref has an active T.
func HasSibling[T any](w *World, ref Ref) bool {
	if w == nil || ref.WorldID != w.id || !w.slots.current(ref) {
		return false
	}
	pool := w.poolFor(reflect.TypeFor[T]())
	return pool != nil && pool.Has(ref.Slot)
}
