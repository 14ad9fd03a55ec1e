package search

import (
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/fragment"
)

// Result bundles one successful fragment search: the match in the assembled
// string, the per-fragment segments it covers, and the assembled text itself
// for callers that want context around the match.
type Result struct {
	Match     *Match
	Segments  []fragment.Segment
	Assembled fragment.Assembled
}

// Highlighter consumes matched segments together with the fragments they
// point into and marks them visually. Implementations render however they
// like (terminal, DOM overlay, ...); the search core never renders anything
// itself.
type Highlighter interface {
	Highlight(fragments []fragment.Fragment, segments []fragment.Segment) error
}

// SearchFragments assembles fragments, finds the first match of query in the
// assembled text, and maps the match span back onto the fragments.
// Returns nil when nothing matches (including fail-soft compilation
// failures). The orchestration is pure composition: no I/O, no rendering.
func (e *Engine) SearchFragments(fragments []fragment.Fragment, query string, opts Options) *Result {
	assembled := fragment.Assemble(fragments)

	m := e.FindFirst(assembled.Text, query, opts)
	if m == nil {
		return nil
	}

	return &Result{
		Match:     m,
		Segments:  fragment.MapToSegments(assembled.Ranges, m.Start, m.End),
		Assembled: assembled,
	}
}

// SearchFragmentsAll is SearchFragments over every match in the assembled
// text. The result is empty, never nil; all results share one assembled
// text.
func (e *Engine) SearchFragmentsAll(fragments []fragment.Fragment, query string, opts Options) []*Result {
	assembled := fragment.Assemble(fragments)

	matches := e.FindAll(assembled.Text, query, opts)
	results := make([]*Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, &Result{
			Match:     m,
			Segments:  fragment.MapToSegments(assembled.Ranges, m.Start, m.End),
			Assembled: assembled,
		})
	}
	return results
}
