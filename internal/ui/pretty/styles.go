// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// File statuses
	Reordered    lipgloss.Style
	WouldReorder lipgloss.Style
	Unchanged    lipgloss.Style
	Skipped      lipgloss.Style
	Error        lipgloss.Style

	FilePath lipgloss.Style
	Detail   lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Help styles
	Heading lipgloss.Style
	Command lipgloss.Style
	Flag    lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Reordered: plain, WouldReorder: plain, Unchanged: plain, Skipped: plain, Error: plain,
			FilePath: plain, Detail: plain,
			DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
			SummaryTitle: plain, Success: plain, Failure: plain,
			Heading: plain, Command: plain, Flag: plain,
			Dim: plain, Bold: plain,
		}
	}

	color := func(code string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return &Styles{
		Reordered:    color("10").Bold(true),
		WouldReorder: color("11").Bold(true),
		Unchanged:    color("8"),
		Skipped:      color("12"),
		Error:        color("9").Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Detail:   color("8"),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    color("14"),
		DiffAdd:     color("10"),
		DiffRemove:  color("9"),
		DiffContext: lipgloss.NewStyle(),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		Success:      color("10").Bold(true),
		Failure:      color("9").Bold(true),

		Heading: color("13").Bold(true),
		Command: color("14"),
		Flag:    color("11"),

		Dim:  color("8"),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// RenderDiff colors a unified diff line by line.
func (s *Styles) RenderDiff(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.SplitAfter(text, "\n")
	var builder strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		body, newline := strings.CutSuffix(line, "\n")
		builder.WriteString(s.diffStyle(body).Render(body))
		if newline {
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

func (s *Styles) diffStyle(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "diff --git"),
		strings.HasPrefix(line, "--- "),
		strings.HasPrefix(line, "+++ "):
		return s.DiffHeader
	case strings.HasPrefix(line, "@@"):
		return s.DiffHunk
	case strings.HasPrefix(line, "+"):
		return s.DiffAdd
	case strings.HasPrefix(line, "-"):
		return s.DiffRemove
	default:
		return s.DiffContext
	}
}
