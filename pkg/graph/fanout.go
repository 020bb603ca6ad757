package graph

// Handle addresses one entry of a FanOut.
type Handle uint64

type entry struct {
	handle   Handle
	node     *Node
	detached bool
}

// FanOut is the ordered, append-only list of children of a Multi node.
//
// Launch iterates over a snapshot: entries appended while a propagation is
// running are first reached by the next propagation, entries removed while it
// is running are skipped for the rest of it.
type FanOut struct {
	entries []*entry
	last    Handle
}

// NewFanOut creates an empty fan-out list.
func NewFanOut() *FanOut {
	return &FanOut{}
}

// Append adds n at the end of the list and returns its handle.
func (f *FanOut) Append(n *Node) Handle {
	if n == nil {
		panic("graph: nil node")
	}
	f.last++
	// Copy on write so that snapshots held by running propagations stay intact.
	entries := make([]*entry, len(f.entries), len(f.entries)+1)
	copy(entries, f.entries)
	f.entries = append(entries, &entry{handle: f.last, node: n})
	return f.last
}

// Remove detaches the entry for h. It reports whether an entry was removed;
// removing an unknown or already removed handle is a no-op.
func (f *FanOut) Remove(h Handle) bool {
	for i, e := range f.entries {
		if e.handle != h {
			continue
		}
		e.detached = true
		entries := make([]*entry, 0, len(f.entries)-1)
		entries = append(entries, f.entries[:i]...)
		f.entries = append(entries, f.entries[i+1:]...)
		return true
	}
	return false
}

// Has reports whether h is attached.
func (f *FanOut) Has(h Handle) bool {
	for _, e := range f.entries {
		if e.handle == h {
			return true
		}
	}
	return false
}

// Len returns the number of attached entries.
func (f *FanOut) Len() int {
	return len(f.entries)
}

// Nodes returns the attached nodes in order.
func (f *FanOut) Nodes() []*Node {
	nodes := make([]*Node, len(f.entries))
	for i, e := range f.entries {
		nodes[i] = e.node
	}
	return nodes
}

func (f *FanOut) snapshot() []*entry {
	return f.entries
}
