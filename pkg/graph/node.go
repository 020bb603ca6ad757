package graph

import "fmt"

// FilterFunc decides whether a value may continue.
type FilterFunc func(value any) bool

// ComputeFunc derives the next flowing value.
type ComputeFunc func(value any) any

// RunFunc performs a side effect with the flowing value.
type RunFunc func(value any)

// CommitFunc observes a value written by an Update node.
type CommitFunc func(prev, next any)

// Node is a single vertex of a propagation graph.
// Only the fields matching Kind are set.
type Node struct {
	kind Kind

	// Label names the node for introspection tools.
	Label string

	filter  FilterFunc
	compute ComputeFunc
	run     RunFunc
	cell    *Cell
	commits []CommitFunc
	child   *Node
	steps   []*Node
	next    *FanOut
}

// Filter creates a node that blocks values for which fn returns false.
func Filter(fn FilterFunc) *Node {
	if fn == nil {
		panic("graph: nil filter function")
	}
	return &Node{kind: KindFilter, filter: fn}
}

// Compute creates a node that replaces the flowing value with fn(value).
func Compute(fn ComputeFunc) *Node {
	if fn == nil {
		panic("graph: nil compute function")
	}
	return &Node{kind: KindCompute, compute: fn}
}

// Run creates a terminal side-effect node.
func Run(fn RunFunc) *Node {
	if fn == nil {
		panic("graph: nil run function")
	}
	return &Node{kind: KindRun, run: fn}
}

// Update creates a node that commits the flowing value into cell.
// Observers run after the write, in order.
func Update(cell *Cell, observers ...CommitFunc) *Node {
	if cell == nil {
		panic("graph: nil cell")
	}
	return &Node{kind: KindUpdate, cell: cell, commits: observers}
}

// Multi creates a node broadcasting to every entry of next.
// A nil next gets a fresh, empty FanOut.
func Multi(next *FanOut) *Node {
	if next == nil {
		next = NewFanOut()
	}
	return &Node{kind: KindMulti, next: next}
}

// Single wraps n as one step of a Seq.
func Single(n *Node) *Node {
	if n == nil {
		panic("graph: nil node")
	}
	return &Node{kind: KindSingle, child: n}
}

// Seq creates an ordered pipeline. The step order never changes.
func Seq(steps ...*Node) *Node {
	for i, s := range steps {
		if s == nil {
			panic(fmt.Sprintf("graph: nil step %d in seq", i))
		}
	}
	return &Node{kind: KindSeq, steps: steps}
}

// Kind returns the node variant.
func (n *Node) Kind() Kind {
	return n.kind
}

// Child returns the wrapped node of a Single, nil otherwise.
func (n *Node) Child() *Node {
	return n.child
}

// Steps returns a copy of the steps of a Seq.
func (n *Node) Steps() []*Node {
	if n.kind != KindSeq {
		return nil
	}
	out := make([]*Node, len(n.steps))
	copy(out, n.steps)
	return out
}

// Next returns the fan-out list of a Multi node, nil otherwise.
func (n *Node) Next() *FanOut {
	return n.next
}

// Cell returns the target of an Update node, nil otherwise.
func (n *Node) Cell() *Cell {
	return n.cell
}

// Last follows the final step of nested Seqs and Singles and returns the
// node it ends on. A labeled Seq is returned as is.
func (n *Node) Last() *Node {
	cur := n
	for {
		switch {
		case cur.kind == KindSingle:
			cur = cur.child
		case cur.kind == KindSeq && len(cur.steps) > 0 && cur.Label == "":
			cur = cur.steps[len(cur.steps)-1]
		default:
			return cur
		}
	}
}
