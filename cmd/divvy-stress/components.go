package main

import (
	"math/rand/v2"

	"github.com/plus3/divvy/ecs"
)

type Position struct {
	X, Y float32
}

func (p *Position) Update()             {}
func (p *Position) Clone(src *Position) { *p = *src }

type Velocity struct {
	ecs.Owner
	DX, DY float32
}

// Update moves the sibling Position, if any.
func (v *Velocity) Update() {
	pos, err := ecs.Sibling[Position](v.World(), v.Entity())
	if err != nil {
		return
	}
	pos.X += v.DX
	pos.Y += v.DY
}

func (v *Velocity) Clone(src *Velocity) {
	v.DX = src.DX
	v.DY = src.DY
}

// Health decays every pass and releases its entity once it is used up.
type Health struct {
	ecs.Owner
	Current int
	Decay   int
}

func (h *Health) Update() {
	h.Current -= h.Decay
	if h.Current <= 0 {
		h.World().Commands().ReleaseRef(h.Entity())
	}
}

func (h *Health) Clone(src *Health) {
	h.Current = src.Current
	h.Decay = src.Decay
}

type Tag struct {
	Name    string
	Touched int
}

func (t *Tag) Update()        { t.Touched++ }
func (t *Tag) Clone(src *Tag) { *t = *src }

// Cargo owns a slice so clones exercise deep copies.
type Cargo struct {
	Items []int
}

func (c *Cargo) Update() {
	for i := range c.Items {
		c.Items[i]++
	}
}

func (c *Cargo) Clone(src *Cargo) {
	c.Items = append(c.Items[:0], src.Items...)
}

var tagNames = []string{"Mario", "Luigi", "Peach", "Bowser", "Toad", "Yoshi"}

func registerAll(w *ecs.World) error {
	for _, register := range []func(*ecs.World) error{
		ecs.Register[Position],
		ecs.Register[Velocity],
		ecs.Register[Health],
		ecs.Register[Tag],
		ecs.Register[Cargo],
	} {
		if err := register(w); err != nil {
			return err
		}
	}
	return nil
}

// registerMirror registers a subset of the component types so clones into the
// mirror world drop the rest.
func registerMirror(w *ecs.World) error {
	for _, register := range []func(*ecs.World) error{
		ecs.Register[Position],
		ecs.Register[Tag],
		ecs.Register[Cargo],
	} {
		if err := register(w); err != nil {
			return err
		}
	}
	return nil
}

// populate attaches between one and all of the component types to e.
func populate(e *ecs.Entity, rng *rand.Rand) error {
	if _, err := ecs.Add(e, Position{X: rng.Float32() * 100, Y: rng.Float32() * 100}); err != nil {
		return err
	}
	if rng.IntN(2) == 0 {
		if _, err := ecs.Add(e, Velocity{DX: rng.Float32() - 0.5, DY: rng.Float32() - 0.5}); err != nil {
			return err
		}
	}
	if rng.IntN(3) == 0 {
		if _, err := ecs.Add(e, Health{Current: 100 + rng.IntN(400), Decay: 1 + rng.IntN(3)}); err != nil {
			return err
		}
	}
	if rng.IntN(2) == 0 {
		if _, err := ecs.Add(e, Tag{Name: tagNames[rng.IntN(len(tagNames))]}); err != nil {
			return err
		}
	}
	if rng.IntN(4) == 0 {
		items := make([]int, 1+rng.IntN(8))
		if _, err := ecs.Add(e, Cargo{Items: items}); err != nil {
			return err
		}
	}
	return nil
}
