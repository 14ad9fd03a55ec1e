package search

import (
	"github.com/claudiolaas/fuzzy-pdf-search-experiment/internal/pattern"
)

// Options configures one search invocation. Options are a pure input: they
// carry no state between calls.
type Options struct {
	// Mode selects the pattern tolerance strategy. Empty means
	// pattern.DefaultMode. Unrecognized modes make the search degrade to
	// "no match" (fail-soft, like any other pattern compilation failure).
	Mode pattern.Mode

	// WholeWord wraps the pattern in word-boundary assertions.
	// Unreliable for non-Latin scripts; see pattern.Options.
	WholeWord bool

	// CaseSensitive makes matching case-sensitive. The default is
	// case-insensitive matching.
	CaseSensitive bool
}

// DefaultOptions returns the documented defaults: intra-word tolerance,
// whole-word matching, case-insensitive. Note that the zero value of Options
// disables whole-word matching; start from DefaultOptions to get the
// defaults.
func DefaultOptions() Options {
	return Options{
		Mode:      pattern.DefaultMode,
		WholeWord: true,
	}
}

// patternOptions projects the search options onto pattern compilation.
func (o Options) patternOptions() pattern.Options {
	return pattern.Options{
		Mode:      o.Mode,
		WholeWord: o.WholeWord,
	}
}
