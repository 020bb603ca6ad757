package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/lattice/internal/presentation/graph"
	"github.com/aretw0/lattice/pkg/dsl"
)

func TestGenerateMermaid(t *testing.T) {
	topo := dsl.Topology{
		Events: []string{"inc", "user-login"},
		Stores: []dsl.StoreNode{
			{Name: "count", Events: []string{"inc"}, Subscribers: 2, State: 5},
			{Name: "doubled", From: "count", State: 10},
			{Name: "session.user", Events: []string{"user-login"}, State: map[string]any{"name": "ada"}},
		},
	}

	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes and Edges",
			contains: []string{
				"graph TD\n",
				`ev_inc(("inc"))`,
				`ev_user_login(("user-login"))`,
				`st_count["count <br/> 👂 2"]`,
				`st_doubled[/"doubled"/]`,
				"ev_inc -- on --> st_count",
				"st_count -. map .-> st_doubled",
				"ev_user_login -- on --> st_session_user",
			},
			excludes: []string{"classDef", "= 5"},
		},
		{
			name:    "State Overlay",
			overlay: &graph.GraphOverlay{ShowState: true, Changed: []string{"count", "count"}},
			contains: []string{
				`st_count["count <br/> 👂 2 <br/> = 5"]`,
				`st_session_user["session.user <br/> = {'name':'ada'}"]`,
				"classDef changed",
				"class st_count changed;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(topo, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
			if n := strings.Count(got, "class st_count changed;"); n > 1 {
				t.Errorf("changed class applied %d times", n)
			}
		})
	}
}
