package lattice_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/lattice"
)

// ExampleCreateStore shows a store driven by an event, a derived store and
// a subscription.
func ExampleCreateStore() {
	count := lattice.CreateStore(0, lattice.WithName("count"))
	inc := lattice.CreateEvent("inc")
	reset := lattice.CreateEvent("reset")

	count.On(inc, func(state, payload any, _ string) any {
		return state.(int) + payload.(int)
	})
	count.Reset(reset)
	doubled := count.Map(func(state, _ any) any { return state.(int) * 2 })

	unsubscribe, err := doubled.Subscribe(func(state any) {
		fmt.Println("doubled:", state)
	})
	if err != nil {
		log.Fatal(err)
	}
	defer unsubscribe()

	inc.Emit(2)
	inc.Emit(0) // unchanged, nothing propagates
	inc.Emit(3)
	reset.Emit(nil)

	fmt.Println("count:", count.GetState())
	// Output:
	// doubled: 0
	// doubled: 4
	// doubled: 10
	// doubled: 0
	// count: 0
}

// ExampleScope shows how naming scopes shape display names.
func ExampleScope() {
	scope := lattice.Scope("app", "session")
	user := lattice.CreateStore("guest", lattice.WithName("user"), lattice.WithParent(scope))

	fmt.Println(user.DisplayName())
	fmt.Println(user.ShortName())
	// Output:
	// app/session/user
	// user
}

// ExampleLoad runs a scenario written in YAML.
func ExampleLoad() {
	dir, err := os.MkdirTemp("", "lattice-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "cart.yaml")
	scenario := `
name: cart
events: [add]
stores:
  - name: items
    initial: []
    on:
      - event: add
        reduce: |
          local out = {}
          for i, v in ipairs(state) do out[i] = v end
          out[#out + 1] = payload
          return out
  - name: size
    map: { from: items, script: "return #state" }
steps:
  - emit: add
    payload: apple
  - emit: add
    payload: pear
  - expect: { store: size, state: 2 }
`
	if err := os.WriteFile(path, []byte(scenario), 0o600); err != nil {
		log.Fatal(err)
	}

	program, err := lattice.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	report, err := program.Run(program.Steps())
	if err != nil {
		log.Fatal(err)
	}

	for _, t := range report.Transitions {
		fmt.Printf("[%d] %s = %v\n", t.Step, t.Store, t.State)
	}
	// Output:
	// [0] items = [apple]
	// [0] size = 1
	// [1] items = [apple pear]
	// [1] size = 2
}
