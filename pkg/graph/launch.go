package graph

import "fmt"

// Launch pushes value into root and runs the graph to completion.
// Panics raised by node functions propagate to the caller.
func Launch(root *Node, value any) {
	if root == nil {
		return
	}
	exec(root, value)
}

// exec runs n and reports the resulting value and whether propagation
// continues past it.
func exec(n *Node, value any) (any, bool) {
	switch n.kind {
	case KindFilter:
		return value, n.filter(value)
	case KindCompute:
		return n.compute(value), true
	case KindUpdate:
		prev := n.cell.set(value)
		for _, fn := range n.commits {
			fn(prev, value)
		}
		return value, true
	case KindRun:
		n.run(value)
		return value, true
	case KindSingle:
		return exec(n.child, value)
	case KindSeq:
		for _, step := range n.steps {
			var ok bool
			if value, ok = exec(step, value); !ok {
				return value, false
			}
		}
		return value, true
	case KindMulti:
		for _, e := range n.next.snapshot() {
			if e.detached {
				continue
			}
			exec(e.node, value)
		}
		return value, true
	default:
		panic(fmt.Sprintf("graph: unknown node kind %q", n.kind))
	}
}
