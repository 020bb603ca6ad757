package dsl

// Builder assembles a scenario document in Go.
type Builder struct {
	doc    Document
	stores map[string]*StoreBuilder
}

// New creates a new scenario builder.
func New(name string) *Builder {
	return &Builder{
		doc:    Document{Name: name},
		stores: make(map[string]*StoreBuilder),
	}
}

// Describe sets the scenario description.
func (b *Builder) Describe(description string) *Builder {
	b.doc.Description = description
	return b
}

// Events declares events.
func (b *Builder) Events(names ...string) *Builder {
	b.doc.Events = append(b.doc.Events, names...)
	return b
}

// Store declares a store. If the store already exists, it returns the
// existing builder.
func (b *Builder) Store(name string) *StoreBuilder {
	if sb, ok := b.stores[name]; ok {
		return sb
	}
	b.doc.Stores = append(b.doc.Stores, StoreSpec{Name: name})
	sb := &StoreBuilder{index: len(b.doc.Stores) - 1, builder: b}
	b.stores[name] = sb
	return sb
}

// Emit appends a step emitting event with payload.
func (b *Builder) Emit(event string, payload any) *Builder {
	b.doc.Steps = append(b.doc.Steps, Step{Emit: event, Payload: payload})
	return b
}

// Set appends a step writing value to a store.
func (b *Builder) Set(store string, value any) *Builder {
	b.doc.Steps = append(b.doc.Steps, Step{Set: store, Value: value})
	return b
}

// Expect appends a step asserting the state of a store.
func (b *Builder) Expect(store string, state any) *Builder {
	b.doc.Steps = append(b.doc.Steps, Step{Expect: &Expectation{Store: store, State: state}})
	return b
}

// Document returns a copy of the document built so far.
func (b *Builder) Document() *Document {
	doc := b.doc
	doc.Events = append([]string(nil), b.doc.Events...)
	doc.Stores = append([]StoreSpec(nil), b.doc.Stores...)
	doc.Steps = append([]Step(nil), b.doc.Steps...)
	return &doc
}

// Build compiles the document into a runnable program.
func (b *Builder) Build(opts ...Option) (*Program, error) {
	return Build(b.Document(), opts...)
}

// StoreBuilder provides a fluent API for configuring a store.
type StoreBuilder struct {
	index   int
	builder *Builder
}

func (s *StoreBuilder) spec() *StoreSpec {
	return &s.builder.doc.Stores[s.index]
}

// Initial sets the initial state.
func (s *StoreBuilder) Initial(value any) *StoreBuilder {
	s.spec().Initial = value
	return s
}

// On binds event to a Lua reducer.
func (s *StoreBuilder) On(event, reduce string) *StoreBuilder {
	spec := s.spec()
	spec.On = append(spec.On, Handler{Event: event, Reduce: reduce})
	return s
}

// Reset makes events restore the initial state.
func (s *StoreBuilder) Reset(events ...string) *StoreBuilder {
	spec := s.spec()
	spec.Reset = append(spec.Reset, events...)
	return s
}

// MapScript derives the store from another one through a Lua mapper.
func (s *StoreBuilder) MapScript(from, src string) *StoreBuilder {
	s.spec().Map = &MapSpec{From: from, Script: src}
	return s
}

// MapPath derives the store from another one through a JSONPath expression.
func (s *StoreBuilder) MapPath(from, path string) *StoreBuilder {
	s.spec().Map = &MapSpec{From: from, Path: path}
	return s
}

// And returns the scenario builder, to continue the chain.
func (s *StoreBuilder) And() *Builder {
	return s.builder
}
