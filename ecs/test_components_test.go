package ecs_test

import "github.com/plus3/divvy/ecs"

// Common test component types
type Counter struct {
	N int
}

func (c *Counter) Update()            { c.N++ }
func (c *Counter) Clone(src *Counter) { c.N = src.N }

type Transform struct {
	ecs.Owner
	X, Y int
}

func (t *Transform) Update() {
	t.X++
	t.Y++
}

func (t *Transform) Clone(src *Transform) {
	t.X = src.X
	t.Y = src.Y
}

type Nametag struct {
	ecs.Owner
	Name    string
	Updates int
}

func (n *Nametag) Update() { n.Updates++ }

func (n *Nametag) Clone(src *Nametag) {
	n.Name = src.Name
	n.Updates = src.Updates
}

// Inventory holds a slice so clone fidelity can be checked for reference types.
type Inventory struct {
	Items []string
}

func (i *Inventory) Update() {}

func (i *Inventory) Clone(src *Inventory) {
	i.Items = append([]string(nil), src.Items...)
}

// Follower records whether its entity also has a Transform.
type Follower struct {
	ecs.Owner
	SawTransform bool
}

func (f *Follower) Update() {
	f.SawTransform = ecs.HasSibling[Transform](f.World(), f.Entity())
}

func (f *Follower) Clone(src *Follower) {
	f.SawTransform = src.SawTransform
}

// Mortal releases its own entity once its TTL runs out.
type Mortal struct {
	ecs.Owner
	TTL int
}

func (m *Mortal) Update() {
	m.TTL--
	if m.TTL <= 0 {
		m.World().Commands().ReleaseRef(m.Entity())
	}
}

func (m *Mortal) Clone(src *Mortal) {
	m.TTL = src.TTL
}

// Tracer appends its label to a shared log on every update.
type Tracer struct {
	Label string
	Log   *[]string
}

func (t *Tracer) Update() { *t.Log = append(*t.Log, t.Label) }

func (t *Tracer) Clone(src *Tracer) {
	t.Label = src.Label
	t.Log = src.Log
}

// Panicker panics on update.
type Panicker struct{}

func (p *Panicker) Update()             { panic("boom") }
func (p *Panicker) Clone(src *Panicker) {}

func newTestWorld(opts ...ecs.Option) *ecs.World {
	w := ecs.NewWorld(opts...)
	mustRegister(ecs.Register[Counter](w))
	mustRegister(ecs.Register[Transform](w))
	mustRegister(ecs.Register[Nametag](w))
	mustRegister(ecs.Register[Inventory](w))
	return w
}

func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

func mustEntity(w *ecs.World) *ecs.Entity {
	e, err := ecs.NewEntity(w)
	if err != nil {
		panic(err)
	}
	return e
}
