package dsl

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/lattice/pkg/schema"
)

// Document is a decoded scenario.
type Document struct {
	Name        string      `yaml:"name,omitempty" mapstructure:"name"`
	Description string      `yaml:"description,omitempty" mapstructure:"description"`
	Events      []string    `yaml:"events,omitempty" mapstructure:"events"`
	Stores      []StoreSpec `yaml:"stores" mapstructure:"stores"`
	Steps       []Step      `yaml:"steps,omitempty" mapstructure:"steps"`
}

// StoreSpec declares one store. A store with Map is derived from another
// store declared before it; Initial is ignored for derived stores.
type StoreSpec struct {
	Name    string    `yaml:"name" mapstructure:"name"`
	Initial any       `yaml:"initial,omitempty" mapstructure:"initial"`
	On      []Handler `yaml:"on,omitempty" mapstructure:"on"`
	Reset   []string  `yaml:"reset,omitempty" mapstructure:"reset"`
	Map     *MapSpec  `yaml:"map,omitempty" mapstructure:"map"`
}

// Handler binds an event to a Lua reducer.
type Handler struct {
	Event  string `yaml:"event" mapstructure:"event"`
	Reduce string `yaml:"reduce" mapstructure:"reduce"`
}

// MapSpec derives a store from From with either a Lua script or a JSONPath.
type MapSpec struct {
	From   string `yaml:"from" mapstructure:"from"`
	Script string `yaml:"script,omitempty" mapstructure:"script"`
	Path   string `yaml:"path,omitempty" mapstructure:"path"`
}

// Step is one action of a scenario. Exactly one of Emit, Set or Expect is
// set.
type Step struct {
	Emit    string       `yaml:"emit,omitempty" mapstructure:"emit"`
	Payload any          `yaml:"payload,omitempty" mapstructure:"payload"`
	Set     string       `yaml:"set,omitempty" mapstructure:"set"`
	Value   any          `yaml:"value,omitempty" mapstructure:"value"`
	Expect  *Expectation `yaml:"expect,omitempty" mapstructure:"expect"`
}

// Expectation asserts the state of a store.
type Expectation struct {
	Store string `yaml:"store" mapstructure:"store"`
	State any    `yaml:"state" mapstructure:"state"`
}

// Action names the kind of a step.
type Action string

const (
	ActionEmit   Action = "emit"
	ActionSet    Action = "set"
	ActionExpect Action = "expect"
)

// Action reports what the step does.
func (s Step) Action() Action {
	switch {
	case s.Expect != nil:
		return ActionExpect
	case s.Set != "":
		return ActionSet
	default:
		return ActionEmit
	}
}

// Target returns the event or store the step refers to.
func (s Step) Target() string {
	switch s.Action() {
	case ActionExpect:
		return s.Expect.Store
	case ActionSet:
		return s.Set
	default:
		return s.Emit
	}
}

// ErrEmptyDocument is returned when a scenario has no content.
var ErrEmptyDocument = errors.New("scenario is empty")

// Parse decodes a YAML (or JSON) scenario, validates its structure against
// the scenario schema and returns the typed document.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if raw == nil {
		return nil, ErrEmptyDocument
	}
	if err := schema.Validate(raw); err != nil {
		return nil, err
	}

	var doc Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return &doc, nil
}

// ParseFile reads and parses the scenario at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
