package ecs

import (
	"reflect"

	"github.com/bits-and-blooms/bitset"
	"github.com/rotisserie/eris"
)

const (
	poolBlockSize = 64
)

// Pool stores the instances of a single component type, addressed purely by
// slot index. Instances live in fixed-size blocks referenced by pointer so an
// instance address stays valid when the pool grows.
type Pool[T any, P ComponentPtr[T]] struct {
	blocks []*[poolBlockSize]T
	active *bitset.BitSet
	size   int
	limit  int
}

// NewPool creates a pool holding size inactive, zero-valued instances.
func NewPool[T any, P ComponentPtr[T]](size int) (*Pool[T, P], error) {
	p := &Pool[T, P]{
		active: bitset.New(uint(max(size, 0))),
	}
	if err := p.Resize(size); err != nil {
		return nil, err
	}
	return p, nil
}

// Type returns the component type stored in the pool.
func (p *Pool[T, P]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// Len returns the number of allocated instances, active or not.
func (p *Pool[T, P]) Len() int {
	return p.size
}

// Active returns the number of active instances.
func (p *Pool[T, P]) Active() int {
	return int(p.active.Count())
}

// Add marks the slot active and returns the instance stored there.
func (p *Pool[T, P]) Add(index Slot) (*T, error) {
	if !p.inBounds(index) {
		return nil, eris.Wrapf(ErrOutOfBounds, "add %s at %d, pool length %d", p.Type(), index, p.size)
	}
	p.active.Set(uint(index))
	return p.at(index), nil
}

// At returns the instance at index regardless of whether it is active.
// It returns nil when index is out of bounds.
func (p *Pool[T, P]) At(index Slot) *T {
	if !p.inBounds(index) {
		return nil
	}
	return p.at(index)
}

// Has reports whether index is in bounds and active.
func (p *Pool[T, P]) Has(index Slot) bool {
	return p.inBounds(index) && p.active.Test(uint(index))
}

// Remove marks the slot inactive and resets its instance to the zero value.
func (p *Pool[T, P]) Remove(index Slot) error {
	if !p.inBounds(index) {
		return eris.Wrapf(ErrOutOfBounds, "remove %s at %d, pool length %d", p.Type(), index, p.size)
	}
	if p.active.Test(uint(index)) {
		p.active.Clear(uint(index))
		var zero T
		*p.at(index) = zero
	}
	return nil
}

// Resize grows or shrinks the pool to size instances. New instances are zero
// valued and inactive; truncated instances are reset and deactivated.
func (p *Pool[T, P]) Resize(size int) error {
	if size < 0 {
		return eris.Wrapf(ErrAllocationFailed, "resize %s to %d", p.Type(), size)
	}
	if p.limit > 0 && size > p.limit {
		return eris.Wrapf(ErrAllocationFailed, "resize %s to %d exceeds limit %d", p.Type(), size, p.limit)
	}

	var zero T
	for i := size; i < p.size; i++ {
		p.active.Clear(uint(i))
		*p.at(Slot(i)) = zero
	}

	needed := (size + poolBlockSize - 1) / poolBlockSize
	for len(p.blocks) < needed {
		p.blocks = append(p.blocks, new([poolBlockSize]T))
	}
	for i := needed; i < len(p.blocks); i++ {
		p.blocks[i] = nil
	}
	p.blocks = p.blocks[:needed]

	p.size = size
	return nil
}

// Update calls Update on every active instance in ascending index order.
func (p *Pool[T, P]) Update() {
	p.updateWhere(nil)
}

func (p *Pool[T, P]) updateWhere(live func(Slot) bool) {
	for i, ok := p.active.NextSet(0); ok && int(i) < p.size; i, ok = p.active.NextSet(i + 1) {
		if live != nil && !live(Slot(i)) {
			continue
		}
		P(p.at(Slot(i))).Update()
	}
}

func (p *Pool[T, P]) get(index Slot) any {
	if !p.Has(index) {
		return nil
	}
	return p.at(index)
}

func (p *Pool[T, P]) cloneFrom(dst Slot, src componentPool, srcIndex Slot) (any, error) {
	other, ok := src.(*Pool[T, P])
	if !ok {
		return nil, eris.Wrapf(ErrNotRegistered, "clone %s from pool of %s", p.Type(), src.Type())
	}
	if !other.Has(srcIndex) {
		return nil, eris.Wrapf(ErrNotFound, "clone %s from inactive slot %d", p.Type(), srcIndex)
	}
	inst, err := p.Add(dst)
	if err != nil {
		return nil, err
	}
	P(inst).Clone(other.at(srcIndex))
	return inst, nil
}

func (p *Pool[T, P]) setLimit(limit int) {
	p.limit = limit
}

func (p *Pool[T, P]) inBounds(index Slot) bool {
	return index >= 0 && int(index) < p.size
}

func (p *Pool[T, P]) at(index Slot) *T {
	return &p.blocks[index/poolBlockSize][index%poolBlockSize]
}

// attach stores the owning World and ref in components that embed Owner.
func attach(inst any, w *World, ref Ref) {
	if o, ok := inst.(owned); ok {
		o.setOwner(w, ref)
	}
}
