// Package highlight renders matched fragment segments for terminals.
// It is one concrete consumer of the search core's Highlighter contract; the
// core itself never renders.
package highlight

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/fragment"
)

// Color palette. Single accent color; matched text carries the highlight,
// everything else stays quiet.
const (
	ColorMatch = "220" // bright yellow, the classic highlighter pen
	ColorGray  = "245" // labels and fragment context
)

// Styles holds the lipgloss styles used to render a highlighted fragment.
type Styles struct {
	Match lipgloss.Style
	Label lipgloss.Style
}

// DefaultStyles returns styled components for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Match: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorMatch)),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
	}
}

// NoColorStyles returns unstyled components for plain output (pipes, files).
func NoColorStyles() Styles {
	return Styles{
		Match: lipgloss.NewStyle(),
		Label: lipgloss.NewStyle(),
	}
}

// Terminal renders matched segments to a writer, styling the matched
// sub-range of each fragment.
type Terminal struct {
	w      io.Writer
	styles Styles
}

// New returns a terminal highlighter writing to w. Styling is enabled only
// when w is an interactive terminal.
func New(w io.Writer) *Terminal {
	styles := NoColorStyles()
	if IsTerminal(w) {
		styles = DefaultStyles()
	}
	return &Terminal{w: w, styles: styles}
}

// NewWithStyles returns a terminal highlighter with explicit styles.
func NewWithStyles(w io.Writer, styles Styles) *Terminal {
	return &Terminal{w: w, styles: styles}
}

// Highlight writes one line per matched segment: the owning fragment's full
// text with the matched sub-range styled.
func (t *Terminal) Highlight(fragments []fragment.Fragment, segments []fragment.Segment) error {
	for _, s := range segments {
		if s.FragmentIndex < 0 || s.FragmentIndex >= len(fragments) {
			continue
		}
		text := fragments[s.FragmentIndex].Text
		if s.Start < 0 || s.End > len(text) || s.Start > s.End {
			continue
		}

		line := text[:s.Start] + t.styles.Match.Render(text[s.Start:s.End]) + text[s.End:]
		label := t.styles.Label.Render(fmt.Sprintf("fragment %d:", s.FragmentIndex))
		if _, err := fmt.Fprintf(t.w, "%s %s\n", label, line); err != nil {
			return err
		}
	}
	return nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
