package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	Visited  []domain.StateIndex
	Current  domain.StateIndex
	Accepted bool
}

// OverlayFromResult collects the states a run passed through.
func OverlayFromResult(res *domain.ProcessResult) *GraphOverlay {
	o := &GraphOverlay{
		Current:  res.FinalState,
		Accepted: res.Accepted,
	}
	for _, rec := range res.Trace {
		if rec.Kind == domain.StepStart || rec.Kind == domain.StepRead {
			o.Visited = append(o.Visited, rec.To)
		}
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart syntax string for an automaton.
// It applies semantic styling:
// - Accepting: (((Double Circle)))
// - Initial: ((Circle))
// - Default: (Rounded)
// Transitions shadowed by an earlier one on the same symbol are drawn dotted.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(def domain.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, st := range def.States {
		opener, closer := "(", ")"

		switch {
		case st.Accepting:
			opener, closer = "(((", ")))" // Double circle
		case st.Index == def.Initial:
			opener, closer = "((", "))" // Circle
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", stateID(st.Index), opener, escapeLabel(st.Name), closer))
	}

	if def.Built() {
		sb.WriteString(fmt.Sprintf("    start_marker[ ] --> %s\n", stateID(def.Initial)))
		sb.WriteString("    style start_marker fill:none,stroke:none;\n")
	}

	type key struct {
		from   domain.StateIndex
		symbol string
	}
	seen := make(map[key]bool)
	for _, tr := range def.Transitions {
		k := key{tr.From, tr.Symbol}
		label := escapeLabel(tr.Symbol)

		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if seen[k] {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		seen[k] = true
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", stateID(tr.From), arrow, stateID(tr.To)))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef accepted fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef rejected fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[domain.StateIndex]bool)
		for _, idx := range overlay.Visited {
			if !idx.Valid() || visitedSet[idx] || idx == overlay.Current {
				continue
			}
			visitedSet[idx] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", stateID(idx)))
		}

		if overlay.Current.Valid() {
			class := "rejected"
			if overlay.Accepted {
				class = "accepted"
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", stateID(overlay.Current), class))
		}
	}

	return sb.String()
}

// stateID keys nodes by index, since state names need not be unique.
func stateID(idx domain.StateIndex) string {
	return fmt.Sprintf("s%d", idx)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
