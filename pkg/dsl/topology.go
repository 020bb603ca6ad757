package dsl

// Topology is a static view of the program graph for rendering.
type Topology struct {
	Name   string
	Events []string
	Stores []StoreNode
}

// StoreNode describes one store of the topology.
type StoreNode struct {
	Name        string
	Events      []string // events attached with On or Reset
	From        string   // source store, empty for root stores
	Subscribers int
	State       any
}

// Topology returns the current shape and state of the program graph.
func (p *Program) Topology() Topology {
	t := Topology{Name: p.doc.Name, Events: p.reg.Events()}
	for _, name := range p.reg.Stores() {
		s, _ := p.reg.Store(name)
		node := StoreNode{
			Name:        name,
			Subscribers: s.Subscribers(),
			State:       s.GetState(),
		}
		for _, ev := range s.Events() {
			node.Events = append(node.Events, ev.Type())
		}
		if src := s.Source(); src != nil {
			node.From = p.byStore[src]
		}
		t.Stores = append(t.Stores, node)
	}
	return t
}
