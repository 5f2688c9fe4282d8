// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-importer/internal/schemas"
	"github.com/jonathan/resume-importer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDraft outputs a human-readable summary of a parsed draft.
func (p *Printer) PrintDraft(draft *types.ResumeDraft) {
	if draft == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", draft.FullName))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", draft.Email))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", draft.Phone))
	sb.WriteString(fmt.Sprintf("Location: %s\n", draft.Location))

	if draft.Summary != "" {
		sb.WriteString(fmt.Sprintf("\nSummary:  %s\n", draft.Summary))
	}

	if len(draft.Experiences) > 0 {
		sb.WriteString(fmt.Sprintf("\nExperience (%d):\n", len(draft.Experiences)))
		count := min(len(draft.Experiences), maxItemsToShow)
		for _, exp := range draft.Experiences[:count] {
			sb.WriteString(fmt.Sprintf("  • %s @ %s", exp.Position, exp.Company))
			if exp.Period != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", exp.Period))
			}
			sb.WriteString("\n")
		}
		if len(draft.Experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(draft.Experiences)-maxItemsToShow))
		}
	}

	if len(draft.Education) > 0 {
		sb.WriteString(fmt.Sprintf("\nEducation (%d):\n", len(draft.Education)))
		count := min(len(draft.Education), maxItemsToShow)
		for _, edu := range draft.Education[:count] {
			sb.WriteString(fmt.Sprintf("  • %s", edu.School))
			if edu.Degree != "" {
				sb.WriteString(fmt.Sprintf(", %s", edu.Degree))
			}
			if edu.Year != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", edu.Year))
			}
			sb.WriteString("\n")
		}
		if len(draft.Education) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(draft.Education)-maxItemsToShow))
		}
	}

	if draft.Skills != "" {
		sb.WriteString(fmt.Sprintf("\nSkills:   %s\n", draft.Skills))
	}

	p.printBox("PARSED RESUME DRAFT", strings.TrimRight(sb.String(), "\n"))
}

// PrintLines outputs the normalized line sequence with indices.
func (p *Printer) PrintLines(lines []string) {
	if len(lines) == 0 {
		p.printBox("NORMALIZED LINES", "(no lines)")
		return
	}

	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString(fmt.Sprintf("%3d  %s\n", i, line))
	}
	p.printBox(fmt.Sprintf("NORMALIZED LINES (%d)", len(lines)), strings.TrimRight(sb.String(), "\n"))
}

// PrintValidation outputs the result of a schema validation. A nil error is a pass.
func (p *Printer) PrintValidation(source string, err error) {
	if err == nil {
		p.printBox("SCHEMA VALID", source)
		return
	}

	var sb strings.Builder
	sb.WriteString(source + "\n\n")
	if verr, ok := err.(*schemas.ValidationError); ok {
		for _, fe := range verr.Errors {
			sb.WriteString(fmt.Sprintf("  ✗ %s: %s\n", fe.Field, fe.Message))
		}
	} else {
		sb.WriteString(fmt.Sprintf("  ✗ %v\n", err))
	}
	p.printBox("SCHEMA VALIDATION FAILED", strings.TrimRight(sb.String(), "\n"))
}
