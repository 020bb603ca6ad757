package graph

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/lattice/pkg/dsl"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	// ShowState appends the current state to every store label.
	ShowState bool
	// Changed lists stores that committed a value during the last run.
	Changed []string
}

// GenerateMermaid produces a Mermaid flowchart of a program topology:
// - Event: ((Circle))
// - Root store: [Rectangle]
// - Derived store: [/Parallelogram/]
// Event handlers are drawn as "on" edges, derivations as dotted "map" edges.
func GenerateMermaid(t dsl.Topology, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, ev := range t.Events {
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", eventID(ev), escape(ev)))
	}

	for _, s := range t.Stores {
		opener, closer := "[", "]"
		if s.From != "" {
			opener, closer = "[/", "/]"
		}

		label := escape(s.Name)
		if s.Subscribers > 0 {
			label += fmt.Sprintf(" <br/> 👂 %d", s.Subscribers)
		}
		if overlay != nil && overlay.ShowState {
			label += " <br/> = " + escape(formatState(s.State))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", storeID(s.Name), opener, label, closer))
	}

	for _, s := range t.Stores {
		for _, ev := range s.Events {
			sb.WriteString(fmt.Sprintf("    %s -- on --> %s\n", eventID(ev), storeID(s.Name)))
		}
		if s.From != "" {
			sb.WriteString(fmt.Sprintf("    %s -. map .-> %s\n", storeID(s.From), storeID(s.Name)))
		}
	}

	if overlay != nil && len(overlay.Changed) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef changed fill:#ffeb3b,stroke:#fbc02d,stroke-width:2px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Changed {
			id := storeID(name)
			if !seen[id] {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s changed;\n", id))
			}
		}
	}

	return sb.String()
}

func eventID(name string) string {
	return "ev_" + sanitizeMermaidID(name)
}

func storeID(name string) string {
	return "st_" + sanitizeMermaidID(name)
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func formatState(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
