package graph

import "github.com/oklog/ulid/v2"

// Cell holds the current value of a store.
// Only an Update node can write to it.
type Cell struct {
	id      string
	current any
}

// NewCell creates a cell seeded with initial and a fresh ULID identity.
func NewCell(initial any) *Cell {
	return &Cell{
		id:      ulid.Make().String(),
		current: initial,
	}
}

// ID returns the stable identity assigned at creation.
func (c *Cell) ID() string {
	return c.id
}

// Current returns the value last committed to the cell.
func (c *Cell) Current() any {
	return c.current
}

func (c *Cell) set(value any) (prev any) {
	prev = c.current
	c.current = value
	return prev
}
