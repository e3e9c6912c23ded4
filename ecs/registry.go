package ecs

import (
	"reflect"
	"slices"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Register creates the pool for component type T, sized to the current
// capacity of the World. Registering a type twice returns ErrAlreadyRegistered
// and leaves the existing pool untouched.
func Register[T any, P ComponentPtr[T]](w *World) error {
	t := reflect.TypeFor[T]()
	if w.poolFor(t) != nil {
		w.warn("component type already registered", zap.Stringer("component", t))
		return eris.Wrapf(ErrAlreadyRegistered, "register %s", t)
	}

	pool, err := NewPool[T, P](w.slots.capacity)
	if err != nil {
		return eris.Wrapf(err, "register %s", t)
	}
	pool.setLimit(w.maxEntities)

	w.pools.Put(typeKey(t), pool)
	w.order = append(w.order, pool)

	w.debug("registered component type", zap.Stringer("component", t))
	return nil
}

// IsRegistered reports whether the World has a pool for T.
func IsRegistered[T any](w *World) bool {
	return w.poolFor(reflect.TypeFor[T]()) != nil
}

// Unregister discards the pool for T and with it every T attached to any
// entity. It reports whether a pool existed.
func Unregister[T any](w *World) bool {
	t := reflect.TypeFor[T]()
	pool := w.poolFor(t)
	if pool == nil {
		return false
	}

	w.pools.Del(typeKey(t))
	w.order = slices.DeleteFunc(w.order, func(p componentPool) bool {
		return p == pool
	})

	w.debug("unregistered component type", zap.Stringer("component", t))
	return true
}

func lookupPool[T any, P ComponentPtr[T]](w *World) *Pool[T, P] {
	pool := w.poolFor(reflect.TypeFor[T]())
	if pool == nil {
		return nil
	}
	return pool.(*Pool[T, P])
}

func getAt[T any, P ComponentPtr[T]](w *World, slot Slot) (*T, error) {
	pool := lookupPool[T, P](w)
	if pool == nil {
		return nil, eris.Wrapf(ErrNotFound, "%s is not registered", reflect.TypeFor[T]())
	}
	if !pool.Has(slot) {
		return nil, eris.Wrapf(ErrNotFound, "%s on slot %d", reflect.TypeFor[T](), slot)
	}
	return pool.At(slot), nil
}
