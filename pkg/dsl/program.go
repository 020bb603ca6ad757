package dsl

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/event"
	"github.com/aretw0/lattice/pkg/registry"
	"github.com/aretw0/lattice/pkg/schema"
	"github.com/aretw0/lattice/pkg/script"
	"github.com/aretw0/lattice/pkg/selector"
	"github.com/aretw0/lattice/pkg/store"
)

// Option configures a Program.
type Option func(*Program)

// WithLogger sets the logger handed to every store of the program.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Program) {
		p.logger = logger
	}
}

// WithHooks registers lifecycle hooks on every store of the program.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Program) {
		p.hooks = hooks
	}
}

// Program is a scenario wired into live stores and events.
// It is not safe for concurrent use.
type Program struct {
	doc     *Document
	reg     *registry.Registry
	scope   *domain.CompositeName
	names   map[string]string
	byStore map[*store.Store]string

	logger *slog.Logger
	hooks  domain.LifecycleHooks

	recording bool
	step      int
	trace     []Transition

	watchers []changeWatcher
	watchSeq int
}

// ChangeFunc receives the name and the new state of a store after a commit.
type ChangeFunc func(store string, state any)

type changeWatcher struct {
	id int
	fn ChangeFunc
}

// Build creates the events and stores of doc in declaration order. Every
// reference to an unknown event or store and every script that fails to
// compile is reported in one aggregated error.
func Build(doc *Document, opts ...Option) (*Program, error) {
	if doc == nil {
		return nil, ErrEmptyDocument
	}

	p := &Program{
		doc:     doc,
		reg:     registry.NewRegistry(),
		names:   make(map[string]string),
		byStore: make(map[*store.Store]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if doc.Name != "" {
		p.scope = domain.NewCompositeName(nil, doc.Name)
	}

	hooks := domain.MergeHooks(domain.LifecycleHooks{OnUpdate: p.record}, p.hooks)

	var errs []error
	for i, name := range doc.Events {
		if err := p.reg.RegisterEvent(event.New(name)); err != nil {
			errs = append(errs, invalid(fmt.Sprintf("events.%d", i), err.Error(), name))
		}
	}
	for i, spec := range doc.Stores {
		errs = append(errs, p.buildStore(fmt.Sprintf("stores.%d", i), spec, hooks)...)
	}
	for i, st := range doc.Steps {
		if err := p.checkStep(st); err != nil {
			errs = append(errs, invalid(fmt.Sprintf("steps.%d", i), err.Error(), st.Target()))
		}
	}

	if err := schema.Aggregate(errs); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", doc.Name, err)
	}

	p.logger.Debug("program built", "name", doc.Name, "stores", len(doc.Stores), "events", len(doc.Events))
	return p, nil
}

func invalid(field, reason string, value any) error {
	return &schema.ValidationError{Field: field, Reason: reason, Value: value}
}

func (p *Program) buildStore(field string, spec StoreSpec, hooks domain.LifecycleHooks) []error {
	var errs []error
	opts := []store.Option{
		store.WithName(spec.Name),
		store.WithParent(p.scope),
		store.WithLogger(p.logger),
		store.WithHooks(hooks),
	}

	var s *store.Store
	if spec.Map != nil {
		derived, err := p.deriveStore(spec.Map, opts)
		if err != nil {
			errs = append(errs, invalid(field+".map", err.Error(), spec.Map.From))
		}
		s = derived
	}
	if s == nil {
		s = store.New(spec.Initial, opts...)
	}

	if err := p.reg.RegisterStore(spec.Name, s); err != nil {
		errs = append(errs, invalid(field+".name", err.Error(), spec.Name))
		return errs
	}
	p.names[s.DisplayName()] = spec.Name
	p.byStore[s] = spec.Name

	for j, h := range spec.On {
		ev, ok := p.reg.Event(h.Event)
		if !ok {
			errs = append(errs, invalid(fmt.Sprintf("%s.on.%d.event", field, j), ErrUnknownEvent.Error(), h.Event))
			continue
		}
		reduce, err := script.Reducer(h.Reduce)
		if err != nil {
			errs = append(errs, invalid(fmt.Sprintf("%s.on.%d.reduce", field, j), err.Error(), nil))
			continue
		}
		s.On(ev, reduce)
	}
	for j, name := range spec.Reset {
		ev, ok := p.reg.Event(name)
		if !ok {
			errs = append(errs, invalid(fmt.Sprintf("%s.reset.%d", field, j), ErrUnknownEvent.Error(), name))
			continue
		}
		s.Reset(ev)
	}
	return errs
}

func (p *Program) deriveStore(spec *MapSpec, opts []store.Option) (*store.Store, error) {
	src, ok := p.reg.Store(spec.From)
	if !ok {
		return nil, fmt.Errorf("%w %q (sources must be declared first)", ErrUnknownStore, spec.From)
	}

	var fn store.MapFunc
	var err error
	if spec.Path != "" {
		fn, err = selector.Path(spec.Path)
	} else {
		fn, err = script.Mapper(spec.Script)
	}
	if err != nil {
		return nil, err
	}

	var derived *store.Store
	if err := guard(func() { derived = src.Map(fn, opts...) }); err != nil {
		return nil, err
	}
	return derived, nil
}

func (p *Program) checkStep(st Step) error {
	switch st.Action() {
	case ActionEmit:
		if _, ok := p.reg.Event(st.Emit); !ok {
			return ErrUnknownEvent
		}
	default:
		if _, ok := p.reg.Store(st.Target()); !ok {
			return ErrUnknownStore
		}
	}
	return nil
}

func (p *Program) record(e *domain.UpdateEvent) {
	name := p.names[e.Store]
	for _, w := range append([]changeWatcher(nil), p.watchers...) {
		w.fn(name, e.Next)
	}
	if !p.recording {
		return
	}
	p.trace = append(p.trace, Transition{
		Step:  p.step,
		Store: name,
		State: e.Next,
	})
}

// OnChange calls fn after every commit to any store of the program until the
// returned function is called. It observes commits through the program's
// update hook: fn is not a store subscriber, so it neither shows in
// Subscribers nor fires OnNotify.
func (p *Program) OnChange(fn ChangeFunc) func() {
	if fn == nil {
		return func() {}
	}
	p.watchSeq++
	id := p.watchSeq
	p.watchers = append(p.watchers, changeWatcher{id: id, fn: fn})
	return func() {
		for i, w := range p.watchers {
			if w.id == id {
				p.watchers = append(p.watchers[:i:i], p.watchers[i+1:]...)
				return
			}
		}
	}
}

// Name returns the scenario name.
func (p *Program) Name() string {
	return p.doc.Name
}

// Document returns the document the program was built from.
func (p *Program) Document() *Document {
	return p.doc
}

// Steps returns the steps declared in the document.
func (p *Program) Steps() []Step {
	return append([]Step(nil), p.doc.Steps...)
}

// Registry exposes the named stores and events.
func (p *Program) Registry() *registry.Registry {
	return p.reg
}

// Stores returns the store names in declaration order.
func (p *Program) Stores() []string {
	return p.reg.Stores()
}

// Events returns the event names in declaration order.
func (p *Program) Events() []string {
	return p.reg.Events()
}

// Store looks up a store by name.
func (p *Program) Store(name string) (*store.Store, bool) {
	return p.reg.Store(name)
}

// Emit fires the named event. A panicking reducer or mapper is returned as a
// *PanicError.
func (p *Program) Emit(name string, payload any) error {
	ev, ok := p.reg.Event(name)
	if !ok {
		return fmt.Errorf("event %q: %w", name, ErrUnknownEvent)
	}
	return guard(func() { ev.Emit(payload) })
}

// Set writes value to the named store.
func (p *Program) Set(name string, value any) error {
	s, ok := p.reg.Store(name)
	if !ok {
		return fmt.Errorf("store %q: %w", name, ErrUnknownStore)
	}
	return guard(func() { s.SetState(value) })
}

// State returns the current state of the named store.
func (p *Program) State(name string) (any, error) {
	s, ok := p.reg.Store(name)
	if !ok {
		return nil, fmt.Errorf("store %q: %w", name, ErrUnknownStore)
	}
	return s.GetState(), nil
}

// Snapshot returns the current state of every store by name.
func (p *Program) Snapshot() map[string]any {
	out := make(map[string]any)
	for _, name := range p.reg.Stores() {
		s, _ := p.reg.Store(name)
		out[name] = s.GetState()
	}
	return out
}
