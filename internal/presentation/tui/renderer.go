package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// DefinitionMarkdown describes an automaton as a markdown document.
func DefinitionMarkdown(def domain.Definition) string {
	var sb strings.Builder

	title := def.Name
	if title == "" {
		title = "Automaton"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	initial := "_not set_"
	if def.Built() {
		initial = "`" + def.InitialName + "`"
	}
	sb.WriteString(fmt.Sprintf("- **Initial state:** %s\n", initial))
	sb.WriteString(fmt.Sprintf("- **Alphabet:** {%s}\n\n", strings.Join(def.Alphabet, ", ")))

	sb.WriteString("## States\n\n")
	sb.WriteString("| # | Name | Accepting |\n|---|------|-----------|\n")
	for _, st := range def.States {
		mark := ""
		if st.Accepting {
			mark = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s |\n", st.Index, st.Name, mark))
	}

	sb.WriteString("\n## Transitions\n\n")
	if len(def.Transitions) == 0 {
		sb.WriteString("_none_\n")
		return sb.String()
	}
	sb.WriteString("| From | Symbol | To |\n|------|--------|----|\n")
	for _, tr := range def.Transitions {
		sb.WriteString(fmt.Sprintf("| %s | `%s` | %s |\n", tr.FromName, tr.Symbol, tr.ToName))
	}
	return sb.String()
}
