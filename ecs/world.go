package ecs

import (
	"fmt"
	"reflect"
	"sync/atomic"
	"weak"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var worldIDs atomic.Uint64

// World owns one Pool per registered component type and the entity slot table.
// It is not safe for concurrent use.
type World struct {
	id   uint64
	name string
	log  *zap.Logger
	mode LogMode

	maxEntities int

	pools *intmap.Map[int, componentPool]
	order []componentPool

	slots slotTable
	refs  *intmap.Map[Slot, weak.Pointer[Entity]]

	commands *Commands
}

// NewWorld creates an empty World.
func NewWorld(opts ...Option) *World {
	o := options{
		logger: zap.NewNop(),
		mode:   LogWarnings,
	}
	for _, opt := range opts {
		opt(&o)
	}

	id := worldIDs.Add(1)
	if o.name == "" {
		o.name = fmt.Sprintf("world-%d", id)
	}

	w := &World{
		id:          id,
		name:        o.name,
		log:         o.logger.With(zap.String("world", o.name)),
		mode:        o.mode,
		maxEntities: o.maxEntities,
		pools:       intmap.New[int, componentPool](16),
		slots:       newSlotTable(o.maxEntities),
		refs:        intmap.New[Slot, weak.Pointer[Entity]](256),
	}
	w.commands = newCommands(w)
	return w
}

// ID returns the process-unique identity of the World.
func (w *World) ID() uint64 {
	return w.id
}

// Name returns the name used in diagnostics.
func (w *World) Name() string {
	return w.name
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.slots.count
}

// Capacity returns the size of the slot table, which is also the length of
// every pool.
func (w *World) Capacity() int {
	return w.slots.capacity
}

// FreeSlots returns the number of reclaimed slots waiting for reuse.
func (w *World) FreeSlots() int {
	return w.slots.freeCount()
}

// Alive reports whether e is bound to this World and its slot is live.
func (w *World) Alive(e *Entity) bool {
	return e.Valid() && e.world == w && w.slots.live(e.slot)
}

// ComponentTypes returns the registered component types in registration order.
func (w *World) ComponentTypes() []reflect.Type {
	types := make([]reflect.Type, len(w.order))
	for i, pool := range w.order {
		types[i] = pool.Type()
	}
	return types
}

// Commands returns the buffer of operations deferred until the end of the
// current update pass.
func (w *World) Commands() *Commands {
	return w.commands
}

// Update calls Update on every active component. Component types are visited
// in registration order and slots in ascending order. Deferred commands are
// flushed once the pass completes.
func (w *World) Update() {
	for _, pool := range w.order {
		pool.updateWhere(w.slots.live)
	}
	w.commands.Flush()
}

// Clear invalidates every live entity handle, discards all pools and resets the
// slot table.
func (w *World) Clear() {
	for slot := Slot(0); int(slot) < w.slots.capacity; slot++ {
		ptr, ok := w.refs.Get(slot)
		if !ok {
			continue
		}
		if e := ptr.Value(); e != nil && e.world == w && e.slot == slot {
			e.world = nil
			e.slot = 0
		}
	}
	w.refs = intmap.New[Slot, weak.Pointer[Entity]](256)
	w.pools = intmap.New[int, componentPool](16)
	w.order = nil
	w.slots.reset()
	w.commands.reset()

	w.debug("cleared world")
}

// Close ends the life of the World the way Clear does. The World can still be
// reused afterwards.
func (w *World) Close() {
	w.Clear()
}

func (w *World) poolFor(t reflect.Type) componentPool {
	pool, ok := w.pools.Get(typeKey(t))
	if !ok {
		return nil
	}
	return pool
}

// allocate binds e to a fresh slot, reusing the lowest free slot first and
// growing every pool otherwise.
func (w *World) allocate(e *Entity) error {
	slot, grow, err := w.slots.next()
	if err != nil {
		return err
	}

	if grow {
		size := int(slot) + 1
		for i, pool := range w.order {
			if err := pool.Resize(size); err != nil {
				for _, done := range w.order[:i] {
					_ = done.Resize(w.slots.capacity)
				}
				return eris.Wrapf(err, "grow %s to %d slots", w.name, size)
			}
		}
	}

	w.slots.take(slot, grow)
	e.world = w
	e.slot = slot
	w.refs.Put(slot, weak.Make(e))

	w.debug("allocated entity", zap.Int("slot", int(slot)), zap.Bool("reused", !grow))
	return nil
}

// release unbinds e and returns its slot to the table.
func (w *World) release(e *Entity) {
	slot := e.slot
	e.world = nil
	e.slot = 0

	if !w.slots.live(slot) {
		w.warn("entity already non-existent", zap.Int("slot", int(slot)))
		return
	}
	w.releaseSlot(slot)
}

// releaseRef releases the slot named by ref, unbinding the handle that owns it
// if one is still reachable.
func (w *World) releaseRef(ref Ref) {
	if ref.WorldID != w.id || !w.slots.current(ref) {
		return
	}
	if ptr, ok := w.refs.Get(ref.Slot); ok {
		if e := ptr.Value(); e != nil && e.world == w && e.slot == ref.Slot {
			w.release(e)
			return
		}
	}
	w.releaseSlot(ref.Slot)
}

// releaseSlot deactivates every component at slot, then either shrinks the
// tail of the table or puts slot on the free list.
func (w *World) releaseSlot(slot Slot) {
	for _, pool := range w.order {
		_ = pool.Remove(slot)
	}
	w.refs.Del(slot)

	if w.slots.release(slot) {
		for _, pool := range w.order {
			_ = pool.Resize(w.slots.capacity)
		}
	}

	w.debug("released entity", zap.Int("slot", int(slot)))
}

// rebind points the back-reference of e's slot at e after a move.
func (w *World) rebind(e *Entity) {
	w.refs.Put(e.slot, weak.Make(e))
}

// clone binds e to a new slot and copies every active component of src whose
// type is registered in this World. Types registered only in the source World
// are skipped.
func (w *World) clone(e *Entity, src *Entity) error {
	from := src.world
	fromSlot := src.slot

	if err := w.allocate(e); err != nil {
		return err
	}
	ref := e.Ref()

	for _, srcPool := range from.order {
		if !srcPool.Has(fromSlot) {
			continue
		}
		dstPool := w.poolFor(srcPool.Type())
		if dstPool == nil {
			w.debug("skipped unregistered component on clone",
				zap.Stringer("component", srcPool.Type()),
				zap.String("source", from.name))
			continue
		}
		inst, err := dstPool.cloneFrom(e.slot, srcPool, fromSlot)
		if err != nil {
			w.release(e)
			return eris.Wrapf(err, "clone %s", src)
		}
		attach(inst, w, ref)
	}

	w.debug("cloned entity",
		zap.Int("slot", int(e.slot)),
		zap.Int("source_slot", int(fromSlot)),
		zap.String("source", from.name))
	return nil
}
