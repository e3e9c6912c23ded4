package ecs

import (
	"fmt"
	"reflect"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Entity is a handle to a slot in a World. The zero value is unbound.
// A handle does not own component storage; it forwards to its World.
type Entity struct {
	world *World
	slot  Slot
}

// NewEntity creates an entity in w.
func NewEntity(w *World) (*Entity, error) {
	e := &Entity{}
	if err := e.ResetIn(w); err != nil {
		return nil, err
	}
	return e, nil
}

// CloneEntity creates a new entity in the World of src holding copies of all
// of src's active components.
func CloneEntity(src *Entity) (*Entity, error) {
	e := &Entity{}
	if err := e.ResetClone(src); err != nil {
		return nil, err
	}
	return e, nil
}

// CloneEntityInto creates a new entity in w holding copies of src's active
// components whose types are registered in w.
func CloneEntityInto(src *Entity, w *World) (*Entity, error) {
	e := &Entity{}
	if err := e.ResetCloneInto(src, w); err != nil {
		return nil, err
	}
	return e, nil
}

// Valid reports whether the handle is bound to a World.
func (e *Entity) Valid() bool {
	return e != nil && e.world != nil
}

// World returns the World the handle is bound to, or nil.
func (e *Entity) World() *World {
	if e == nil {
		return nil
	}
	return e.world
}

// Slot returns the slot index. It is only meaningful while the handle is valid.
func (e *Entity) Slot() Slot {
	if e == nil {
		return 0
	}
	return e.slot
}

// Ref returns the by-value reference stored in components of this entity.
func (e *Entity) Ref() Ref {
	if !e.Valid() {
		return Ref{}
	}
	return Ref{WorldID: e.world.id, Slot: e.slot, Gen: e.world.slots.generation(e.slot)}
}

func (e *Entity) String() string {
	if !e.Valid() {
		return "Entity (invalid)"
	}
	return fmt.Sprintf("Entity #%d", e.slot)
}

// Release frees the slot held by the handle and leaves it unbound. Releasing
// an unbound handle does nothing.
func (e *Entity) Release() {
	if e.Valid() {
		e.world.release(e)
	}
}

// Reset is Release under the name shared by the other Reset methods.
func (e *Entity) Reset() {
	e.Release()
}

// ResetIn releases the current slot and binds the handle to a new slot in w.
func (e *Entity) ResetIn(w *World) error {
	if w == nil {
		return eris.Wrap(ErrInvalidEntity, "reset into nil world")
	}
	e.Release()
	return w.allocate(e)
}

// ResetClone releases the current slot and makes the handle a copy of src in
// src's World. An unbound src is an error and leaves e untouched. Resetting a
// handle to a copy of itself does nothing.
func (e *Entity) ResetClone(src *Entity) error {
	if !src.Valid() {
		return eris.Wrap(ErrInvalidEntity, "clone of an unbound entity")
	}
	if src == e {
		return nil
	}
	e.Release()
	return src.world.clone(e, src)
}

// ResetCloneInto releases the current slot and makes the handle a copy of src
// in w. Component types not registered in w are skipped.
func (e *Entity) ResetCloneInto(src *Entity, w *World) error {
	if !src.Valid() {
		return eris.Wrap(ErrInvalidEntity, "clone of an unbound entity")
	}
	if w == nil {
		return eris.Wrap(ErrInvalidEntity, "clone into nil world")
	}
	if src == e {
		return nil
	}
	e.Release()
	return w.clone(e, src)
}

// Move returns a new handle owning e's slot. e is left unbound.
func (e *Entity) Move() *Entity {
	moved := &Entity{}
	moved.MoveFrom(e)
	return moved
}

// MoveFrom releases the current slot and takes over the slot of src, which is
// left unbound.
func (e *Entity) MoveFrom(src *Entity) {
	if src == e {
		return
	}
	e.Release()
	if !src.Valid() {
		return
	}

	e.world = src.world
	e.slot = src.slot
	src.world = nil
	src.slot = 0
	e.world.rebind(e)
}

// Add attaches a copy of value to e. Adding a type that is already present
// keeps the existing instance and returns it.
func Add[T any, P ComponentPtr[T]](e *Entity, value T) (*T, error) {
	t := reflect.TypeFor[T]()
	if !e.Valid() {
		return nil, eris.Wrapf(ErrInvalidEntity, "add %s", t)
	}

	w := e.world
	pool := lookupPool[T, P](w)
	if pool == nil {
		return nil, eris.Wrapf(ErrNotRegistered, "add %s to %s", t, e)
	}

	if pool.Has(e.slot) {
		w.warn("component already present", zap.Stringer("component", t), zap.Int("slot", int(e.slot)))
		return pool.At(e.slot), nil
	}

	inst, err := pool.Add(e.slot)
	if err != nil {
		return nil, err
	}
	P(inst).Clone(&value)
	attach(inst, w, e.Ref())

	w.debug("added component", zap.Stringer("component", t), zap.Int("slot", int(e.slot)))
	return inst, nil
}

// Get returns the T attached to e.
func Get[T any, P ComponentPtr[T]](e *Entity) (*T, error) {
	if !e.Valid() {
		return nil, eris.Wrapf(ErrInvalidEntity, "get %s", reflect.TypeFor[T]())
	}
	return getAt[T, P](e.world, e.slot)
}

// Has reports whether e has an active T. It returns false for unbound handles
// and unregistered types.
func Has[T any](e *Entity) bool {
	if !e.Valid() {
		return false
	}
	pool := e.world.poolFor(reflect.TypeFor[T]())
	return pool != nil && pool.Has(e.slot)
}

// Remove detaches T from e. Removing an absent component does nothing.
func Remove[T any](e *Entity) error {
	t := reflect.TypeFor[T]()
	if !e.Valid() {
		return eris.Wrapf(ErrInvalidEntity, "remove %s", t)
	}

	w := e.world
	pool := w.poolFor(t)
	if pool == nil {
		return eris.Wrapf(ErrNotRegistered, "remove %s from %s", t, e)
	}

	if !pool.Has(e.slot) {
		w.debug("component already absent", zap.Stringer("component", t), zap.Int("slot", int(e.slot)))
		return nil
	}
	if err := pool.Remove(e.slot); err != nil {
		return err
	}

	w.debug("removed component", zap.Stringer("component", t), zap.Int("slot", int(e.slot)))
	return nil
}
