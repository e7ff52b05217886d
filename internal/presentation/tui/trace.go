package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	haltStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	acceptedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// PrintTrace writes the execution trace of one run.
// With styled set, records are colored and the verdict carries a check or cross mark.
func PrintTrace(w io.Writer, res *domain.ProcessResult, styled bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, render(headerStyle, "--- Execution Trace ---", styled))

	for _, rec := range res.Trace {
		fmt.Fprintln(w, formatRecord(rec, res.Accepted, styled))
	}
}

func formatRecord(rec domain.TraceRecord, accepted, styled bool) string {
	switch rec.Kind {
	case domain.StepVerdict:
		if !styled {
			return rec.Message
		}
		if accepted {
			return acceptedStyle.Render("✓ " + rec.Message)
		}
		return rejectedStyle.Render("✗ " + rec.Message)
	case domain.StepUnknownSymbol, domain.StepNoTransition:
		return render(haltStyle, rec.Message, styled)
	default:
		return render(stepStyle, rec.Message, styled)
	}
}

// Verdict renders a one-word summary of the run.
func Verdict(res *domain.ProcessResult, styled bool) string {
	if res.Accepted {
		return render(acceptedStyle, "✓ "+domain.VerdictAccepted, styled)
	}
	return render(rejectedStyle, "✗ "+domain.VerdictRejected, styled)
}

func render(style lipgloss.Style, s string, styled bool) string {
	if !styled {
		return s
	}
	return style.Render(s)
}
