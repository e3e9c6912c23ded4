package ecs

// Commands buffers structural operations requested while an update pass is
// running. World.Update flushes the buffer once every component has been
// updated.
type Commands struct {
	world  *World
	refs   []Ref
	defers []func()
}

func newCommands(w *World) *Commands {
	return &Commands{world: w}
}

// Release queues the release of e. The entity is resolved when it is queued,
// so moving it to another handle before the flush still releases it. Unbound
// handles and entities of other worlds are ignored.
func (c *Commands) Release(e *Entity) {
	if e.World() != c.world {
		return
	}
	c.refs = append(c.refs, e.Ref())
}

// ReleaseRef queues the release of the entity a component belongs to. It lets
// a component remove its own entity from within Update. A ref whose entity is
// already gone when the buffer is flushed is ignored, even if its slot has
// been reused.
func (c *Commands) ReleaseRef(ref Ref) {
	c.refs = append(c.refs, ref)
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.refs) + len(c.defers)
}

// Flush runs queued releases and then queued functions. Operations queued
// during a flush wait for the next one.
func (c *Commands) Flush() {
	refs, defers := c.refs, c.defers
	c.reset()

	for _, ref := range refs {
		c.world.releaseRef(ref)
	}

	for _, fn := range defers {
		fn()
	}
}

func (c *Commands) reset() {
	c.refs = nil
	c.defers = nil
}
